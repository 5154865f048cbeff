package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title    string   `json:"title" validate:"required,notblank"`
	PrepTime string   `json:"prep_time" validate:"required,clock"`
	Video    string   `json:"video_link" validate:"omitempty,weblink"`
	Steps    []string `json:"steps" validate:"required,min=1"`
	Rating   int      `json:"rating" validate:"min=1,max=5"`
}

func TestValidator(t *testing.T) {
	InitValidator()

	valid := sampleRequest{Title: "Soup", PrepTime: "00:15:00", Steps: []string{"boil"}, Rating: 5}
	require.NoError(t, Validate.Struct(valid))

	invalid := sampleRequest{Title: "   ", PrepTime: "24:00:00", Video: "ftp://x", Steps: []string{}, Rating: 6}
	messages := ValidationMessages(Validate.Struct(invalid))

	require.NotNil(t, messages)
	assert.Equal(t, "this field may not be blank", messages["title"])
	assert.Equal(t, "time has wrong format, use hh:mm:ss", messages["prep_time"])
	assert.Contains(t, messages, "video_link")
	assert.Contains(t, messages, "steps")
	assert.Equal(t, "ensure this value is less than or equal to 5", messages["rating"])
}

func TestValidationMessages_NonValidatorError(t *testing.T) {
	assert.Nil(t, ValidationMessages(errors.New("boom")))
	assert.Nil(t, ValidationMessages(nil))
}
