package server

import (
	"net/http"
	"testing"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_NoAddress(t *testing.T) {
	_, err := NewServer(http.NewServeMux(), config.Server{}, workers.NewWorkers(), logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewServer_Success(t *testing.T) {
	cfg := config.Server{HTTPAddress: "localhost:0"}

	srv, err := NewServer(http.NewServeMux(), cfg, workers.NewWorkers(), logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, srv)
}

func TestNewServer_NilWorkersAllowed(t *testing.T) {
	cfg := config.Server{HTTPAddress: "localhost:0"}

	srv, err := NewServer(http.NewServeMux(), cfg, nil, logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, srv)
}
