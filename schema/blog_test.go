package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreateRequiredFields(t *testing.T) {
	err := ValidateCreate(&BlogCreate{})
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := map[string]bool{}
	for _, ve := range verrs {
		fields[ve.Field] = true
	}
	assert.True(t, fields["Title"], "missing title must be reported")
	assert.True(t, fields["Slug"], "missing slug must be reported")
}

func TestValidateCreateSlugConstraints(t *testing.T) {
	testCases := []struct {
		name string
		slug string
		ok   bool
	}{
		{name: "valid slug", slug: "hello-world", ok: true},
		{name: "uppercase slug", slug: "Hello-World", ok: false},
		{name: "slug with space", slug: "hello world", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCreate(&BlogCreate{Title: "t", Slug: tc.slug})
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateCreateTitleTooLong(t *testing.T) {
	err := ValidateCreate(&BlogCreate{
		Title: strings.Repeat("a", 201),
		Slug:  "ok",
	})
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "max", verrs[0].Tag)
}

func TestValidatePatchAllowsEmptyPayload(t *testing.T) {
	assert.NoError(t, ValidatePatch(&BlogPatch{}))
}

func TestValidatePatchChecksPresentFields(t *testing.T) {
	bad := "Not Lowercase"
	err := ValidatePatch(&BlogPatch{Slug: &bad})
	assert.Error(t, err)
}

func TestValidationErrorsMessage(t *testing.T) {
	err := ValidateCreate(&BlogCreate{Slug: "ok"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title is required")
}
