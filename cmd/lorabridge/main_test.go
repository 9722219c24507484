package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/lorabridge/lorabridge/internal/adapters/config"
	"github.com/lorabridge/lorabridge/internal/app"
	"github.com/lorabridge/lorabridge/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRun_Version(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	provider := func(context.Context) (*app.Components, func(), error) {
		return &app.Components{Logger: mockLogger}, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestApplyConfigFlag(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")

	applyConfigFlag([]string{"serve", "--config", "/etc/lorabridge.yaml"})
	assert.Equal(t, "/etc/lorabridge.yaml", os.Getenv(config.EnvConfigPath))

	applyConfigFlag([]string{"serve", "--config=/tmp/other.yaml"})
	assert.Equal(t, "/tmp/other.yaml", os.Getenv(config.EnvConfigPath))
}
