package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/emberhaus/storefront/internal/app"
	"github.com/emberhaus/storefront/internal/backend"
	"github.com/emberhaus/storefront/internal/domain/checkout"
)

func cmdProducts(ctx context.Context, a *app.App, args []string) error {
	category := ""
	if len(args) > 0 {
		category = args[0]
	}

	products, err := a.Catalog.List(ctx, category)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Println("no products found")
		return nil
	}
	for _, p := range products {
		stock := ""
		if !p.InStock {
			stock = "  (out of stock)"
		}
		fmt.Printf("%-12s  ₹%-6s  %-24s %s%s\n", p.ID, p.Price, p.Name, p.Category, stock)
	}
	return nil
}

func cmdProduct(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: product <id>")
	}

	p, err := a.Catalog.Resolve(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: ₹%s\n", p.Name, p.Price)
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	fmt.Printf("wax: %s  burn time: %s  weight: %s\n", p.WaxType, p.BurnTime, p.Weight)
	return nil
}

func cmdCart(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}

	switch args[0] {
	case "show":
		return showCart(a)
	case "add":
		if len(args) < 2 || len(args) > 3 {
			return errors.New("usage: cart add <id> [qty]")
		}
		qty := 1
		if len(args) == 3 {
			var err error
			qty, err = strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("quantity %q is not a number", args[2])
			}
		}
		p, err := a.Catalog.Resolve(ctx, args[1])
		if err != nil {
			return err
		}
		if err := a.Cart.AddItem(ctx, *p, qty); err != nil {
			return err
		}
		fmt.Printf("added %d × %s\n", qty, p.Name)
		return showCart(a)
	case "set":
		if len(args) != 3 {
			return errors.New("usage: cart set <id> <qty>")
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("quantity %q is not a number", args[2])
		}
		a.Cart.UpdateQuantity(ctx, args[1], qty)
		return showCart(a)
	case "remove":
		if len(args) != 2 {
			return errors.New("usage: cart remove <id>")
		}
		a.Cart.RemoveItem(ctx, args[1])
		return showCart(a)
	case "clear":
		a.Cart.Clear(ctx)
		fmt.Println("cart cleared")
		return nil
	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
}

func showCart(a *app.App) error {
	items := a.Cart.Items()
	if len(items) == 0 {
		fmt.Println("your cart is empty")
		return nil
	}

	for _, li := range items {
		fmt.Printf("%-12s  %d × ₹%-6s = ₹%-7s %s\n",
			li.ProductID, li.Quantity, li.Price, li.Subtotal(), li.Name)
	}

	q := a.Quote()
	fmt.Printf("\nsubtotal (%d items): ₹%s\n", a.Cart.Count(), q.Subtotal)
	if q.Shipping.IsZero() {
		fmt.Println("shipping: FREE")
	} else {
		fmt.Printf("shipping: ₹%s (add ₹%s more for free shipping)\n",
			q.Shipping, q.RemainingForFreeShipping)
	}
	fmt.Printf("total: ₹%s\n", q.Total)
	return nil
}

func cmdCheckout(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	var (
		addr    checkout.ShippingAddress
		payment string
		notes   string
	)
	fs.StringVar(&addr.Name, "name", "", "recipient name")
	fs.StringVar(&addr.Phone, "phone", "", "contact phone")
	fs.StringVar(&addr.Address, "address", "", "street address")
	fs.StringVar(&addr.City, "city", "", "city")
	fs.StringVar(&addr.State, "state", "", "state")
	fs.StringVar(&addr.Pincode, "pincode", "", "postal code")
	fs.StringVar(&payment, "payment", string(checkout.PaymentCOD), "payment method: cod or online")
	fs.StringVar(&notes, "notes", "", "optional order notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if a.Cart.IsEmpty() {
		return errors.New("cart is empty, nothing to check out")
	}
	if !a.Session.IsAuthenticated() {
		if err := a.Session.LoadProfile(ctx); err != nil {
			return errors.New("please login to place an order")
		}
	}

	order, err := a.Checkout.Submit(ctx, addr, checkout.PaymentMethod(payment), notes)
	if err != nil {
		return err
	}
	fmt.Printf("order %s placed. total ₹%s, status %s\n", order.OrderNumber, order.Total, order.Status)
	return nil
}

func cmdRegister(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	var reg backend.Registration
	fs.StringVar(&reg.Name, "name", "", "full name")
	fs.StringVar(&reg.Email, "email", "", "email address")
	fs.StringVar(&reg.Phone, "phone", "", "phone number (optional)")
	fs.StringVar(&reg.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.Session.Register(ctx, reg); err != nil {
		return err
	}
	fmt.Printf("account created, welcome %s\n", a.Session.Current().Name)
	return nil
}

func cmdLogin(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	var creds backend.Credentials
	fs.StringVar(&creds.Email, "email", "", "email address")
	fs.StringVar(&creds.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.Session.Login(ctx, creds); err != nil {
		return err
	}
	fmt.Printf("welcome back, %s\n", a.Session.Current().Name)
	return nil
}

func cmdLogout(ctx context.Context, a *app.App) error {
	if err := a.Session.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func cmdWhoami(ctx context.Context, a *app.App) error {
	if err := a.Session.LoadProfile(ctx); err != nil {
		fmt.Println("not logged in")
		return nil
	}
	p := a.Session.Current()
	fmt.Printf("%s <%s>", p.Name, p.Email)
	if p.IsAdmin {
		fmt.Print("  [admin]")
	}
	fmt.Println()
	return nil
}

func cmdOrder(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: order <id>")
	}

	o, err := a.Backend.GetOrder(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("order %s  %s  placed %s\n", o.OrderNumber, o.Status, o.CreatedAt.Format("2006-01-02"))
	for _, it := range o.Items {
		fmt.Printf("  %-12s  %d × ₹%-6s  %s\n", it.ProductID, it.Quantity, it.Price, it.Name)
	}
	addr := o.ShippingAddress
	fmt.Printf("ship to: %s, %s, %s, %s %s\n", addr.Name, addr.Address, addr.City, addr.State, addr.Pincode)
	fmt.Printf("payment: %s  total: ₹%s\n", o.PaymentMethod, o.Total)
	if o.Notes != "" {
		fmt.Printf("notes: %s\n", o.Notes)
	}
	return nil
}

func cmdProfile(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	name := fs.String("name", "", "new display name")
	phone := fs.String("phone", "", "new phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.Session.LoadProfile(ctx); err != nil {
		return errors.New("please login to manage your profile")
	}

	if *name == "" && *phone == "" {
		p := a.Session.Current()
		fmt.Printf("%s <%s>  phone: %s  member since %s\n",
			p.Name, p.Email, p.Phone, p.CreatedAt.Format("2006-01-02"))
		return nil
	}

	p, err := a.Session.UpdateProfile(ctx, backend.ProfileUpdate{Name: *name, Phone: *phone})
	if err != nil {
		return err
	}
	fmt.Printf("profile updated: %s  phone: %s\n", p.Name, p.Phone)
	return nil
}

func cmdOrders(ctx context.Context, a *app.App) error {
	orders, err := a.Backend.MyOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("no orders yet")
		return nil
	}
	for _, o := range orders {
		fmt.Printf("%-12s  ₹%-7s  %-10s  %s\n",
			o.OrderNumber, o.Total, o.Status, o.CreatedAt.Format("2006-01-02"))
	}
	return nil
}
