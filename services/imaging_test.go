package services

import (
	"context"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"snapbook-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resizedHeader rewrites the IHDR dimensions of a real PNG. The pixel data
// no longer matches, but only the header is read before the size check.
func resizedHeader(t *testing.T, width, height uint32) []byte {
	t.Helper()
	data := pngBytes(t, 1, 1)
	require.Equal(t, "IHDR", string(data[12:16]))

	binary.BigEndian.PutUint32(data[16:20], width)
	binary.BigEndian.PutUint32(data[20:24], height)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestThumbnailEncoderRejectsHugeRaster(t *testing.T) {
	enc := NewThumbnailEncoder(PortfolioMaxEdge)

	_, err := enc.Encode(context.Background(), "bomb.png", resizedHeader(t, 12000, 12000))
	require.ErrorIs(t, err, ErrUnsupportedImage)
	assert.Contains(t, err.Error(), "12000x12000")
}

func TestThumbnailEncoderAcceptsBudgetEdge(t *testing.T) {
	enc := NewThumbnailEncoder(PortfolioMaxEdge)

	// Within budget, so the failure comes from the mismatched pixel data.
	_, err := enc.Encode(context.Background(), "edge.png", resizedHeader(t, 1000, 1000))
	require.ErrorIs(t, err, ErrUnsupportedImage)
	assert.NotContains(t, err.Error(), "exceeds")
}

func TestUploadRejectsHugeRasterWithoutChanges(t *testing.T) {
	deps := testDeps()
	m := newPortfolio(t, store.NewMemoryStore(), deps)
	before := m.Images()

	_, err := m.Upload(context.Background(), []UploadFile{
		{Name: "ok.png", Data: pngBytes(t, 4, 4)},
		{Name: "bomb.png", Data: resizedHeader(t, 20000, 20000)},
	})
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.Equal(t, before, m.Images())
}
