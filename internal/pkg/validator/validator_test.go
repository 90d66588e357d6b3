package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Title  string `validate:"required,min=3"`
	Rating int    `validate:"required,gte=1,lte=5"`
}

func TestValidateReturnsFieldTagMap(t *testing.T) {
	errs := Validate(&sampleRequest{Title: "ab", Rating: 9})

	assert.Equal(t, map[string]string{
		"Title":  "min",
		"Rating": "lte",
	}, errs)
}

func TestValidateNilOnValidStruct(t *testing.T) {
	errs := Validate(&sampleRequest{Title: "Great place", Rating: 4})
	assert.Nil(t, errs)
}
