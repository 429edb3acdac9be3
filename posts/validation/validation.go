// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/redsocial/api/posts/models"
)

var validate = validator.New()

// ValidateCreatePost checks the create-post payload
func ValidateCreatePost(req models.CreatePostRequest) error {
	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("content is required")
	}
	if err := validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return fmt.Errorf("invalid %s (%s)", strings.ToLower(verrs[0].Field()), verrs[0].Tag())
		}
		return err
	}
	return nil
}
