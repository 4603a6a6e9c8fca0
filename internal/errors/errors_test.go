package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"gosupply/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", stderrors.New("boom"), CodeInternalError},
		{"invalid argument", core.NewInvalidArgument("qty", "must be positive"), CodeInvalidArgument},
		{"unknown tool", fmt.Errorf("%w: nope", core.ErrUnknownTool), CodeUnknownTool},
		{"not found", core.NewNotFoundError("product", "P1"), CodeNotFound},
		{"config", ConfigInvalid("PORT is required"), CodeConfigInvalid},
		{"wrapped database", fmt.Errorf("read: %w", DatabaseError("query failed", stderrors.New("conn reset"))), CodeDatabaseError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestWrapKeepsDomainCode(t *testing.T) {
	err := Wrap(core.NewInvalidPeriod("soon"), "trim mix")

	assert.Equal(t, CodeInvalidArgument, GetCode(err))
	assert.True(t, core.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "trim mix: ")
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestWithCodeOverridesCode(t *testing.T) {
	err := WithCode(CodeExternalService, stderrors.New("timeout"))

	assert.Equal(t, CodeExternalService, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "timeout", err.Error())
}

func TestInvalidArgumentMatchesSentinel(t *testing.T) {
	err := InvalidArgument("arguments do not match schema")

	assert.True(t, core.IsInvalidArgument(err))
	assert.Equal(t, CodeInvalidArgument, GetCode(err))
}

func TestExternalServiceErrorMessage(t *testing.T) {
	err := ExternalServiceError("openai", stderrors.New("status 500"))

	assert.Equal(t, "openai service error: status 500", err.Error())
	assert.Equal(t, CodeExternalService, GetCode(err))
}

func TestWithCodeDoesNotRepeatMessage(t *testing.T) {
	cause := stderrors.New("supplier_weights cannot be negative")
	err := WithCode(CodeConfigInvalid, cause)

	assert.Equal(t, "supplier_weights cannot be negative", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "configuration validation failed: supplier_weights cannot be negative",
		Wrap(err, "configuration validation failed").Error())
}
