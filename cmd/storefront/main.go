// Command storefront is a terminal client for the candle shop backend.
// Each invocation restores the durable session state (cart, tokens), runs
// one command, and persists whatever changed.
//
// Usage:
//
//	storefront products [category]
//	storefront product <id>
//	storefront cart [show|add|set|remove|clear] ...
//	storefront checkout -name ... -phone ... -address ... -city ... -state ... -pincode ... [-payment cod|online] [-notes ...]
//	storefront register|login|logout|whoami|profile|orders
//	storefront order <id>
//	storefront admin login|orders|set-status|add-product|update-product|remove-product ...
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/emberhaus/storefront/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	lg, err := zap.NewProduction()
	if err != nil {
		slog.Error("create logger", "err", err)
		os.Exit(1)
	}
	defer func() { _ = lg.Sync() }()
	ctx = zctx.Base(ctx, lg)

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printUsage()
		return errors.New("command required")
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	switch args[0] {
	case "products":
		return cmdProducts(ctx, a, args[1:])
	case "product":
		return cmdProduct(ctx, a, args[1:])
	case "cart":
		return cmdCart(ctx, a, args[1:])
	case "checkout":
		return cmdCheckout(ctx, a, args[1:])
	case "register":
		return cmdRegister(ctx, a, args[1:])
	case "login":
		return cmdLogin(ctx, a, args[1:])
	case "logout":
		return cmdLogout(ctx, a)
	case "whoami":
		return cmdWhoami(ctx, a)
	case "orders":
		return cmdOrders(ctx, a)
	case "order":
		return cmdOrder(ctx, a, args[1:])
	case "profile":
		return cmdProfile(ctx, a, args[1:])
	case "admin":
		return cmdAdmin(ctx, a, args[1:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: storefront <command> [args]

Catalog
  products [category]        list the catalog
  product <id>               show one product

Cart
  cart                       show cart contents and totals
  cart add <id> [qty]        add a product to the cart
  cart set <id> <qty>        set a line's quantity (minimum 1)
  cart remove <id>           remove a line
  cart clear                 empty the cart

Checkout
  checkout -name N -phone P -address A -city C -state S -pincode Z
           [-payment cod|online] [-notes TEXT]

Account
  register -name N -email E -password PW [-phone P]
  login -email E -password PW
  logout | whoami | orders
  order <id>                 show one order in full
  profile [-name N] [-phone P]
                             show or update your profile

Admin
  admin login -email E -password PW
  admin orders [-status S]
  admin set-status <order-id> <status>
  admin add-product -name N -price P -category C -image URL [...]
  admin update-product <id> -name N -price P [...]
  admin remove-product <id>
`)
}
