// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

// Package api is the HTTP surface of the discovery service. Request bodies
// are validated with go-playground/validator before reaching the engine.
package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SearchBody is the POST /api/v1/search request body.
type SearchBody struct {
	SessionID string `json:"session_id" validate:"required,max=128"`
	Query     string `json:"query" validate:"required,max=512"`
	Origin    string `json:"origin" validate:"omitempty,oneof=text voice"`
	Limit     int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// ClickBody is the POST /api/v1/click request body.
type ClickBody struct {
	SessionID string `json:"session_id" validate:"required,max=128"`
	ItemID    int    `json:"item_id" validate:"required,min=1"`
	Position  int    `json:"position" validate:"omitempty,min=1"`
	RequestID string `json:"request_id" validate:"omitempty,max=64"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest runs struct validation and flattens failures into one
// client-facing message.
func validateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid fields: %s", strings.Join(fields, ", "))
}
