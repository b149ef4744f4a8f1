// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var validBlockKind = validation.By(func(value any) error {
	if k, _ := value.(BlockKind); !k.IsValid() {
		return validation.NewError("validation_block_kind", "must be one of text, table, list, image, mixed")
	}
	return nil
})

var positiveIDs = validation.Each(validation.Min(int64(1)))

// Validate checks that the edit names a language and a known kind.
func (e BlockEdit) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Language, validation.Required, validation.Length(2, 35)),
		validation.Field(&e.Kind, validation.Required, validBlockKind),
	)
}

// Validate checks that every selected id is positive.
func (s Selection) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ProductGroupIDs, positiveIDs),
		validation.Field(&s.ProductIDs, positiveIDs),
		validation.Field(&s.SolutionIDs, positiveIDs),
	)
}
