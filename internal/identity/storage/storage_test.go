package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryUpload(t *testing.T) {
	t.Parallel()

	m := NewMemory()

	url, err := m.Upload(context.Background(), "cnh.jpg", []byte("document bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "memory://documents/"))
	require.True(t, strings.HasSuffix(url, "_cnh.jpg"))
	require.Equal(t, 1, m.Len())
}

func TestObjectKeysNeverCollide(t *testing.T) {
	t.Parallel()

	a := objectKey("car.pdf")
	b := objectKey("car.pdf")
	require.NotEqual(t, a, b)
	require.True(t, strings.HasSuffix(a, "_car.pdf"))
}
