package util_test

import (
	"schoolscan_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewListResponseReady(t *testing.T) {
	resp := util.NewListResponse([]string{"a", "b"}, 2)
	assert.Equal(t, "ready", resp.State)
	assert.Equal(t, 2, resp.Count)
}

func TestNewListResponseEmpty(t *testing.T) {
	resp := util.NewListResponse([]string{}, 0)
	assert.Equal(t, "empty", resp.State)
	assert.Equal(t, 0, resp.Count)
}
