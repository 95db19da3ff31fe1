package kitties_test

import (
	"context"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/clients/kitties"
	"github.com/KirkDiggler/crypto-zombies/internal/dna"
	zerr "github.com/KirkDiggler/crypto-zombies/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) kitties.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := kitties.New(&kitties.Config{BaseURL: server.URL + "/"})
	require.NoError(t, err)
	return client
}

func TestClient_GetKitty(t *testing.T) {
	var gotPath string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "genes": "626837621154801616088980922659877168609154386318304496692374110716999053"}`))
	})

	kitty, err := client.GetKitty(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "/kitties/7", gotPath)
	assert.Equal(t, uint64(7), kitty.ID)

	want, _ := new(big.Int).SetString("626837621154801616088980922659877168609154386318304496692374110716999053", 10)
	assert.Equal(t, 0, want.Cmp(kitty.Genes))

	// last sixteen digits of the genes
	assert.Equal(t, dna.DNA(2374110716999053), kitty.DNA())
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
		{name: "not found", status: http.StatusNotFound, body: `{"error": "missing"}`},
		{name: "malformed json", status: http.StatusOK, body: `{"genes": `},
		{name: "unparsable genes", status: http.StatusOK, body: `{"id": 1, "genes": "0xfeed"}`},
		{name: "negative genes", status: http.StatusOK, body: `{"id": 1, "genes": "-42"}`},
		{name: "missing genes", status: http.StatusOK, body: `{"id": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetKitty(context.Background(), 1)
			require.Error(t, err)
			assert.True(t, zerr.IsOracleUnavailable(err), "got %v", err)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := kitties.New(&kitties.Config{BaseURL: url})
	require.NoError(t, err)

	_, err = client.GetKitty(context.Background(), 1)
	assert.True(t, zerr.IsOracleUnavailable(err))
}

func TestClient_RespectsContext(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.GetKitty(ctx, 1)
	assert.True(t, zerr.IsOracleUnavailable(err))
}

func TestNew_Validation(t *testing.T) {
	_, err := kitties.New(nil)
	assert.True(t, zerr.Is(err, zerr.CodeInvalidArgument))

	_, err = kitties.New(&kitties.Config{BaseURL: "not a url"})
	assert.True(t, zerr.Is(err, zerr.CodeInvalidArgument))
}

func TestStaticClient(t *testing.T) {
	client := kitties.NewStaticClient(map[uint64]uint64{1: 5_000_000_000_000_000_123})

	kitty, err := client.GetKitty(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, dna.DNA(123), kitty.DNA())

	_, err = client.GetKitty(context.Background(), 2)
	assert.True(t, zerr.IsOracleUnavailable(err))

	client.Put(2, big.NewInt(42))
	kitty, err = client.GetKitty(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, dna.DNA(42), kitty.DNA())
}

func TestKitty_DNA_Nil(t *testing.T) {
	var k *kitties.Kitty
	assert.Equal(t, dna.DNA(0), k.DNA())
}
