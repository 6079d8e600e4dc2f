package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/emberhaus/storefront/internal/app"
	"github.com/emberhaus/storefront/internal/backend"
)

func cmdAdmin(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: admin <login|orders|set-status|add-product|update-product|remove-product>")
	}

	switch args[0] {
	case "login":
		return cmdAdminLogin(ctx, a, args[1:])
	case "orders":
		return cmdAdminOrders(ctx, a, args[1:])
	case "set-status":
		return cmdAdminSetStatus(ctx, a, args[1:])
	case "add-product":
		return cmdAdminAddProduct(ctx, a, args[1:])
	case "update-product":
		return cmdAdminUpdateProduct(ctx, a, args[1:])
	case "remove-product":
		return cmdAdminRemoveProduct(ctx, a, args[1:])
	default:
		return fmt.Errorf("unknown admin command %q", args[0])
	}
}

func cmdAdminLogin(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("admin login", flag.ContinueOnError)
	var creds backend.Credentials
	fs.StringVar(&creds.Email, "email", "", "email address")
	fs.StringVar(&creds.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.Admin.Login(ctx, creds); err != nil {
		return err
	}
	fmt.Printf("admin login ok, welcome %s\n", a.Admin.Current().Name)
	return nil
}

// requireAdmin resumes the stored admin login before an elevated call, so a
// revoked or demoted token fails fast with a clear message.
func requireAdmin(ctx context.Context, a *app.App) error {
	if a.Admin.IsAuthenticated() {
		return nil
	}
	if err := a.Admin.LoadProfile(ctx); err != nil {
		return errors.Wrap(err, "admin login required")
	}
	return nil
}

func cmdAdminOrders(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("admin orders", flag.ContinueOnError)
	status := fs.String("status", "", "filter by order status")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireAdmin(ctx, a); err != nil {
		return err
	}

	orders, err := a.AdminBackend.ListOrders(ctx, *status)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("no orders")
		return nil
	}
	for _, o := range orders {
		fmt.Printf("%-12s  ₹%-7s  %-10s  %s  %s\n",
			o.OrderNumber, o.Total, o.Status, o.ShippingAddress.City, o.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func cmdAdminSetStatus(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: admin set-status <order-id> <status>")
	}
	if err := requireAdmin(ctx, a); err != nil {
		return err
	}

	order, err := a.AdminBackend.UpdateOrderStatus(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("order %s is now %s\n", order.OrderNumber, order.Status)
	return nil
}

func cmdAdminAddProduct(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("admin add-product", flag.ContinueOnError)
	var (
		in    backend.ProductInput
		price string
	)
	fs.StringVar(&in.Name, "name", "", "product name")
	fs.StringVar(&price, "price", "", "price in rupees")
	fs.StringVar(&in.Category, "category", "", "product category")
	fs.StringVar(&in.Image, "image", "", "image URL")
	fs.StringVar(&in.Description, "description", "", "description")
	fs.StringVar(&in.WaxType, "wax", "", "wax type")
	fs.StringVar(&in.BurnTime, "burn-time", "", "burn time")
	fs.StringVar(&in.Weight, "weight", "", "weight")
	fs.BoolVar(&in.InStock, "in-stock", true, "available for purchase")
	fs.BoolVar(&in.Featured, "featured", false, "featured on the home page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		return fmt.Errorf("price %q is not a number", price)
	}
	in.Price = p

	if err := requireAdmin(ctx, a); err != nil {
		return err
	}

	created, err := a.AdminBackend.CreateProduct(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("created product %s (%s)\n", created.ID, created.Name)
	return nil
}

func cmdAdminUpdateProduct(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: admin update-product <id> [flags]")
	}
	id := args[0]

	fs := flag.NewFlagSet("admin update-product", flag.ContinueOnError)
	var (
		in    backend.ProductInput
		price string
	)
	fs.StringVar(&in.Name, "name", "", "product name")
	fs.StringVar(&price, "price", "", "price in rupees")
	fs.StringVar(&in.Category, "category", "", "product category")
	fs.StringVar(&in.Image, "image", "", "image URL")
	fs.StringVar(&in.Description, "description", "", "description")
	fs.StringVar(&in.WaxType, "wax", "", "wax type")
	fs.StringVar(&in.BurnTime, "burn-time", "", "burn time")
	fs.StringVar(&in.Weight, "weight", "", "weight")
	fs.BoolVar(&in.InStock, "in-stock", true, "available for purchase")
	fs.BoolVar(&in.Featured, "featured", false, "featured on the home page")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		return fmt.Errorf("price %q is not a number", price)
	}
	in.Price = p

	if err := requireAdmin(ctx, a); err != nil {
		return err
	}

	updated, err := a.AdminBackend.UpdateProduct(ctx, id, in)
	if err != nil {
		return err
	}
	a.Catalog.Invalidate(id)
	fmt.Printf("updated product %s (%s)\n", updated.ID, updated.Name)
	return nil
}

func cmdAdminRemoveProduct(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: admin remove-product <id>")
	}
	if err := requireAdmin(ctx, a); err != nil {
		return err
	}

	if err := a.AdminBackend.DeleteProduct(ctx, args[0]); err != nil {
		return err
	}
	a.Catalog.Invalidate(args[0])
	fmt.Printf("removed product %s\n", args[0])
	return nil
}
