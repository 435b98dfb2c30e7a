package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MiniPOS/internal/cart"
	"MiniPOS/internal/catalog"
	"MiniPOS/internal/ledger"
)

func newDriver(t *testing.T, input string) (*Driver, *bytes.Buffer) {
	t.Helper()

	cat := catalog.New(catalog.NewMemStore())
	_, err := cat.Upsert(context.Background(), "Caneta", decimal.RequireFromString("2.50"))
	require.NoError(t, err)
	led := ledger.New(ledger.NewMemStore())

	out := &bytes.Buffer{}
	return &Driver{
		Catalog: cat,
		Ledger:  led,
		Checkout: &cart.Service{
			Catalog: cat,
			Ledger:  led,
			Now:     func() time.Time { return time.Date(2024, 5, 1, 14, 5, 9, 0, time.UTC) },
		},
		In:       strings.NewReader(input),
		Out:      out,
		Location: time.UTC,
	}, out
}

func lines(in ...string) string { return strings.Join(in, "\n") + "\n" }

func TestDriver_CheckoutAndReport(t *testing.T) {
	d, out := newDriver(t, lines(
		"3", "Caneta", "4", "fim",
		"4",
		"5",
	))

	require.NoError(t, d.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "4 unit(s) of Caneta added to the cart.")
	assert.Contains(t, got, "--- Receipt ---")
	assert.Contains(t, got, "Subtotal: 10.00")
	assert.Contains(t, got, "Total: 10.00")
	assert.Contains(t, got, "01/05/2024 14:05:09")
	assert.Contains(t, got, "Units sold: 4  Revenue: 10.00")
	assert.True(t, strings.HasSuffix(got, "Bye.\n"))

	all, err := d.Ledger.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDriver_EditAndList(t *testing.T) {
	d, out := newDriver(t, lines(
		"2", "Bone", "19,90",
		"2", "",
		"2", "Mochila", "-1",
		"1",
		"5",
	))

	require.NoError(t, d.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Product saved.")
	assert.Contains(t, got, "Product name cannot be empty.")
	assert.Contains(t, got, "Invalid price. It must be a positive number.")
	assert.Contains(t, got, "19.90")

	// listing is name sorted
	assert.Less(t, strings.LastIndex(got, "Bone"), strings.LastIndex(got, "Caneta"))

	_, err := d.Catalog.Lookup(context.Background(), "Mochila")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestDriver_CheckoutErrors(t *testing.T) {
	d, out := newDriver(t, lines(
		"3", "Nope", "Caneta", "zero", "Caneta", "0", "end",
		"4",
		"9",
	))

	// input ends without choosing exit
	require.NoError(t, d.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Product not found. Try again.")
	assert.Equal(t, 2, strings.Count(got, "Invalid quantity. Try again."))
	assert.Contains(t, got, "No products were added to the cart.")
	assert.Contains(t, got, "No sales recorded.")
	assert.Contains(t, got, "Invalid option. Try again.")
}

func TestDriver_EmptyCatalog(t *testing.T) {
	d, out := newDriver(t, lines("1"))
	d.Catalog = catalog.New(catalog.NewMemStore())

	require.NoError(t, d.Run(context.Background()))
	assert.Contains(t, out.String(), "No products registered.")
}

func TestDriver_StopsOnCancelledContext(t *testing.T) {
	d, _ := newDriver(t, lines("1"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, d.Run(ctx), context.Canceled)
}

func TestDriver_StopsWhileWaitingForInput(t *testing.T) {
	cases := []struct {
		name  string
		typed string
	}{
		{name: "main menu", typed: ""},
		{name: "inside checkout", typed: lines("3", "Caneta")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, _ := newDriver(t, "")
			pr, pw := io.Pipe()
			t.Cleanup(func() { _ = pw.Close() })
			d.In = pr

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			errc := make(chan error, 1)
			go func() { errc <- d.Run(ctx) }()

			if tc.typed != "" {
				_, err := io.WriteString(pw, tc.typed)
				require.NoError(t, err)
			}
			time.Sleep(50 * time.Millisecond)
			cancel()

			select {
			case err := <-errc:
				assert.ErrorIs(t, err, context.Canceled)
			case <-time.After(2 * time.Second):
				t.Fatal("Run kept waiting for input after cancel")
			}
		})
	}
}
