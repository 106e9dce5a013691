package validator

import "testing"

type input struct {
	Title    string `json:"title" validate:"notblank,max=10"`
	Email    string `json:"email" validate:"omitempty,email"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

func TestValidateStruct(t *testing.T) {
	if errs := ValidateStruct(&input{Title: "ok"}); errs != nil {
		t.Fatalf("valid input reported %v", errs)
	}

	errs := ValidateStruct(&input{Title: "   ", Email: "nope", Priority: "urgent"})
	if len(errs) != 3 {
		t.Fatalf("got %d errors: %v", len(errs), errs)
	}
	want := []FieldError{
		{Field: "title", Message: "title is required"},
		{Field: "email", Message: "email must be a valid email address"},
		{Field: "priority", Message: "priority must be one of: low, medium, high"},
	}
	for i, w := range want {
		if errs[i] != w {
			t.Errorf("errs[%d] = %+v, want %+v", i, errs[i], w)
		}
	}
}

func TestValidateStructMax(t *testing.T) {
	errs := ValidateStruct(&input{Title: "0123456789x"})
	if len(errs) != 1 || errs[0].Message != "title must be no longer than 10 characters" {
		t.Errorf("errs = %v", errs)
	}
}

func TestValidateVar(t *testing.T) {
	if errs := ValidateVar("status", "pending", "oneof=pending in-progress completed"); errs != nil {
		t.Errorf("valid status reported %v", errs)
	}
	errs := ValidateVar("title", "\t", "notblank")
	if len(errs) != 1 || errs[0].Field != "title" {
		t.Errorf("errs = %v", errs)
	}
}
