// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package validation

import (
	"strings"
	"testing"
)

type reviewInput struct {
	Rating  int    `validate:"required,min=1,max=5"`
	Comment string `validate:"max=20"`
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestValidateStructPasses(t *testing.T) {
	if verr := ValidateStruct(&reviewInput{Rating: 4, Comment: "solid"}); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
}

func TestValidateStructSingleFailure(t *testing.T) {
	verr := ValidateStruct(&reviewInput{Rating: 9})
	if verr == nil {
		t.Fatal("expected validation error")
	}

	fields := verr.Fields()
	if len(fields) != 1 {
		t.Fatalf("got %d field errors, want 1", len(fields))
	}
	if fields[0].Field != "Rating" || fields[0].Tag != "max" {
		t.Errorf("got %+v, want Rating/max", fields[0])
	}
	if !strings.Contains(fields[0].Message, "at most 5") {
		t.Errorf("message %q not translated", fields[0].Message)
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("got code %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "Rating" {
		t.Errorf("got details %v, want field Rating", apiErr.Details)
	}
}

func TestValidateStructMultipleFailures(t *testing.T) {
	verr := ValidateStruct(&loginInput{Email: "not-an-email", Password: "ab"})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if len(verr.Fields()) != 2 {
		t.Fatalf("got %d field errors, want 2", len(verr.Fields()))
	}

	apiErr := verr.ToAPIError()
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Errorf("multi-error details missing fields list: %v", apiErr.Details)
	}
	if !strings.Contains(apiErr.Message, "Email") || !strings.Contains(apiErr.Message, "Password") {
		t.Errorf("combined message incomplete: %q", apiErr.Message)
	}
}

func TestRequiredRejectsZeroRating(t *testing.T) {
	verr := ValidateStruct(&reviewInput{Rating: 0})
	if verr == nil {
		t.Fatal("expected validation error for zero rating")
	}
	if verr.Fields()[0].Field != "Rating" {
		t.Errorf("got %+v, want Rating failure", verr.Fields()[0])
	}
}
