package storefront

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	checkoutdomain "github.com/Apurer/choufli-storefront/internal/domains/checkout/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(DataDirEnv, "/tmp/choufli-test")
	t.Setenv(OriginEnv, "")
	require.NoError(t, os.Unsetenv(OriginEnv))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/tmp/choufli-test", cfg.DataDir)
	require.Equal(t, "http://localhost:8000", cfg.Origin)
	require.Equal(t, int64(8), cfg.Fee())

	offer, err := cfg.Offer()
	require.NoError(t, err)
	require.Equal(t, "M&M", offer.Code)
	require.Equal(t, int64(10), offer.DiscountPercent)
	require.Equal(t, int64(125), offer.BasePrice)

	endpoints, err := cfg.CheckoutEndpoints()
	require.NoError(t, err)
	require.Equal(t, []checkoutdomain.Endpoint{{
		Name: "intake",
		URL:  "http://localhost:8000/api/orders",
		Mode: checkoutdomain.ModeStrict,
	}}, endpoints)
}

func TestLoad_File(t *testing.T) {
	t.Setenv(DataDirEnv, "")
	t.Setenv(OriginEnv, "https://choufli.tn")
	path := writeFile(t, "storefront.yaml", `
data_dir: /var/lib/storefront
origin: https://ignored.example
shipping_fee: 0
catalog:
  - name: Chemise Choufli
    price: 120
  - name: Casquette
    price: 30
promo:
  code: ETE24
  discount_percent: 25
  product: casquette
endpoints:
  - name: intake
    url: https://api.choufli.tn/api/orders
    timeout: 5s
  - name: sheet
    url: https://script.google.com/macros/s/x/exec
    mode: no-cors
    accept_opaque: true
    timeout: 1m
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/var/lib/storefront", cfg.DataDir)
	require.Equal(t, "https://choufli.tn", cfg.Origin)
	require.Equal(t, int64(0), cfg.Fee())

	offer, err := cfg.Offer()
	require.NoError(t, err)
	require.Equal(t, "ETE24", offer.Code)
	require.Equal(t, int64(25), offer.DiscountPercent)
	require.Equal(t, int64(30), offer.BasePrice)

	endpoints, err := cfg.CheckoutEndpoints()
	require.NoError(t, err)
	require.Len(t, endpoints, 2)
	require.Equal(t, checkoutdomain.ModeStrict, endpoints[0].Mode)
	require.Equal(t, 5*time.Second, endpoints[0].Timeout)
	require.Equal(t, checkoutdomain.ModeFireAndForget, endpoints[1].Mode)
	require.True(t, endpoints[1].AcceptOpaque)
	require.Equal(t, time.Minute, endpoints[1].Timeout)
}

func TestLoad_EmptyOriginEnvMeansSameOrigin(t *testing.T) {
	t.Setenv(OriginEnv, "")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Empty(t, cfg.Origin)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown field":    "colour: red\n",
		"bad mode":         "endpoints:\n  - url: http://x/api\n    mode: sometimes\n",
		"missing url":      "endpoints:\n  - name: x\n",
		"bad duration":     "endpoints:\n  - url: http://x/api\n    timeout: soon\n",
		"negative fee":     "shipping_fee: -1\n",
		"unknown promo":    "promo:\n  product: Pantalon\n",
		"bad percent":      "promo:\n  discount_percent: 120\n",
		"duplicate entry":  "catalog:\n  - name: A\n    price: 1\n  - name: a\n    price: 2\n",
		"nameless product": "catalog:\n  - price: 1\n",
	}
	for name, content := range cases {
		_, err := Load(writeFile(t, "bad.yaml", content))
		require.Error(t, err, name)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	require.Len(t, cfg.Catalog, 1)
}
