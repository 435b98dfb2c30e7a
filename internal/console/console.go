// Package console is the interactive menu driver of the point of sale.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"MiniPOS/internal/cart"
	"MiniPOS/internal/catalog"
	"MiniPOS/internal/ledger"
)

const reportTimeLayout = "02/01/2006 15:04:05"

type Driver struct {
	Catalog  *catalog.Catalog
	Ledger   *ledger.Ledger
	Checkout *cart.Service
	Log      *zap.Logger

	In  io.Reader
	Out io.Writer

	// Location for report timestamps; time.Local when nil.
	Location *time.Location

	lines   <-chan string
	scanErr error
}

// Run loops over the main menu until the operator exits or input ends.
func (d *Driver) Run(ctx context.Context) error {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	done := make(chan struct{})
	defer close(done)
	d.lines = d.readLines(done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		d.printf("\n--- Main Menu ---\n")
		d.printf("1. List products\n")
		d.printf("2. Add/edit product\n")
		d.printf("3. Checkout\n")
		d.printf("4. Sales report\n")
		d.printf("5. Exit\n")

		choice, err := d.prompt(ctx, "Choose an option: ")
		if err != nil {
			return d.stopErr(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = d.listProducts(ctx)
		case "2":
			err = d.editProduct(ctx)
		case "3":
			err = d.checkout(ctx)
		case "4":
			err = d.report(ctx)
		case "5":
			d.printf("Bye.\n")
			return nil
		default:
			d.printf("Invalid option. Try again.\n")
		}

		if errors.Is(err, io.EOF) || (err != nil && ctx.Err() != nil) {
			return d.stopErr(err)
		}
		if err != nil {
			d.Log.Error("menu action failed", zap.String("option", choice), zap.Error(err))
			d.printf("Something went wrong: %v\n", err)
		}
	}
}

func (d *Driver) listProducts(ctx context.Context) error {
	products, err := d.Catalog.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		d.printf("No products registered.\n")
		return nil
	}

	d.printf("\n--- Available Products ---\n")
	tw := d.table()
	fmt.Fprintf(tw, "Product\tPrice\n")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.UnitPrice.StringFixed(2))
	}
	return tw.Flush()
}

func (d *Driver) editProduct(ctx context.Context) error {
	name, err := d.prompt(ctx, "\nProduct name: ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		d.printf("Product name cannot be empty.\n")
		return nil
	}

	raw, err := d.prompt(ctx, "Product price: ")
	if err != nil {
		return err
	}
	price, err := catalog.ParsePrice(raw)
	if err != nil {
		d.printf("Invalid price. It must be a positive number.\n")
		return nil
	}

	_, err = d.Catalog.Upsert(ctx, name, price)
	switch {
	case errors.Is(err, catalog.ErrInvalidName):
		d.printf("Product name cannot be empty.\n")
	case errors.Is(err, catalog.ErrInvalidPrice):
		d.printf("Invalid price. It must be a positive number.\n")
	case err != nil:
		return err
	default:
		d.printf("Product saved.\n")
	}
	return nil
}

func (d *Driver) checkout(ctx context.Context) error {
	sess := d.Checkout.NewSession()

	for {
		if err := d.listProducts(ctx); err != nil {
			return err
		}

		name, err := d.prompt(ctx, "\nProduct to add to the cart (or 'fim' to finish): ")
		if err != nil {
			return err
		}
		if cart.IsEndOfSelection(name) {
			break
		}
		name = strings.TrimSpace(name)

		if _, err := d.Catalog.Lookup(ctx, name); err != nil {
			if !errors.Is(err, catalog.ErrNotFound) {
				return err
			}
			d.printf("Product not found. Try again.\n")
			continue
		}

		raw, err := d.prompt(ctx, "Quantity: ")
		if err != nil {
			return err
		}
		qty, err := cart.ParseQuantity(raw)
		if err != nil {
			d.printf("Invalid quantity. Try again.\n")
			continue
		}

		err = sess.AddSelection(ctx, name, qty)
		switch {
		case errors.Is(err, cart.ErrProductNotFound):
			d.printf("Product not found. Try again.\n")
		case errors.Is(err, cart.ErrInvalidQuantity):
			d.printf("Invalid quantity. Try again.\n")
		case err != nil:
			return err
		default:
			d.printf("%d unit(s) of %s added to the cart.\n", qty, name)
		}
	}

	receipt, err := d.Checkout.Complete(ctx, sess)
	if errors.Is(err, cart.ErrEmptyCart) {
		d.printf("No products were added to the cart.\n")
		return nil
	}
	if err != nil {
		return err
	}

	d.printf("\n--- Receipt ---\n")
	tw := d.table()
	for _, rec := range receipt.Records {
		fmt.Fprintf(tw, "%s\tQty: %d\tSubtotal: %s\n", rec.Product, rec.Quantity, rec.Subtotal.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	d.printf("Total: %s\n", receipt.Total.StringFixed(2))
	return nil
}

func (d *Driver) report(ctx context.Context) error {
	records, err := d.Ledger.All(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		d.printf("No sales recorded.\n")
		return nil
	}

	loc := d.Location
	if loc == nil {
		loc = time.Local
	}

	d.printf("\n--- Sales History ---\n")
	tw := d.table()
	fmt.Fprintf(tw, "Product\tQty\tTotal\tDate/Time\n")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			rec.Product, rec.Quantity, rec.Subtotal.StringFixed(2), rec.SoldAt.In(loc).Format(reportTimeLayout))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	sum, err := d.Ledger.Summary(ctx)
	if err != nil {
		return err
	}
	d.printf("Units sold: %d  Revenue: %s\n", sum.Units, sum.Revenue.StringFixed(2))
	return nil
}

// readLines scans In on its own goroutine so a prompt can give up when the
// context ends. The channel is closed at end of input; scanErr is set before.
func (d *Driver) readLines(done <-chan struct{}) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(d.In)
		for sc.Scan() {
			select {
			case out <- sc.Text():
			case <-done:
				return
			}
		}
		d.scanErr = sc.Err()
	}()
	return out
}

// prompt returns io.EOF once input ends and ctx.Err() if ctx is done first.
func (d *Driver) prompt(ctx context.Context, msg string) (string, error) {
	d.printf("%s", msg)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-d.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

func (d *Driver) stopErr(err error) error {
	if errors.Is(err, io.EOF) {
		return d.scanErr
	}
	return err
}

func (d *Driver) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(d.Out, format, args...)
}

func (d *Driver) table() *tabwriter.Writer {
	return tabwriter.NewWriter(d.Out, 0, 0, 2, ' ', 0)
}
