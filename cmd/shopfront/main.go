package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"shopfront/internal/cart"
	"shopfront/internal/catalog"
	"shopfront/internal/checkout"
	"shopfront/internal/config"
	"shopfront/internal/model"
	"shopfront/internal/prefs"
	"shopfront/internal/storage"

	"github.com/rs/zerolog"
)

const usageText = `shopfront - storefront client

Usage: shopfront <command> [arguments]

Commands:
  products [-category NAME]   list the catalogue
  search <keyword>            search the catalogue
  product <id>                show a single product
  add <id>                    add a product to the cart
  remove <id>                 decrease a product's quantity by one
  delete <id>                 remove a product from the cart entirely
  cart                        show the cart and total
  clear                       empty the cart
  checkout                    place an order from the cart
  orders                      show order history
  theme [light-theme|dark-theme]  show or set the theme
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)

	// Cancel in-progress work on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize durable storage, falling back to the file backend when
	// redis is configured but unreachable
	kv, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize the cart store and clients
	cartStore := cart.NewStore(ctx, kv, logger)
	catalogClient := catalog.NewHTTPClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	orderClient := checkout.NewHTTPOrderClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	submitter := checkout.NewSubmitter(cartStore, orderClient, logger)
	prefStore := prefs.NewStore(kv, logger)

	app := &app{
		cart:      cartStore,
		catalog:   catalogClient,
		submitter: submitter,
		prefs:     prefStore,
	}

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usageText)
		return fmt.Errorf("no command given")
	}

	return app.dispatch(ctx, args[0], args[1:])
}

// buildStorage selects the durable storage backend from config. An
// unreachable redis degrades to the file backend so the cart keeps
// working locally.
func buildStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (storage.KV, error) {
	if cfg.Storage.Backend == config.StorageBackendRedis {
		kv, err := storage.NewRedisKV(ctx,
			cfg.Storage.RedisAddr,
			cfg.Storage.RedisPassword,
			cfg.Storage.RedisDB,
			cfg.Storage.RedisTTLDuration(),
			logger,
		)
		if err == nil {
			return kv, nil
		}
		logger.Warn().
			Err(err).
			Str("addr", cfg.Storage.RedisAddr).
			Msg("redis unreachable, falling back to file storage")
	}

	return storage.NewFileKV(cfg.Storage.Dir, logger)
}

type app struct {
	cart      *cart.Store
	catalog   catalog.Client
	submitter *checkout.Submitter
	prefs     *prefs.Store
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "products":
		return a.cmdProducts(ctx, args)
	case "search":
		return a.cmdSearch(ctx, args)
	case "product":
		return a.cmdProduct(ctx, args)
	case "add":
		return a.cmdAdd(ctx, args)
	case "remove":
		return a.cmdRemove(ctx, args)
	case "delete":
		return a.cmdDelete(ctx, args)
	case "cart":
		return a.cmdCart()
	case "clear":
		return a.cmdClear(ctx)
	case "checkout":
		return a.cmdCheckout(ctx, args)
	case "orders":
		return a.cmdOrders(ctx)
	case "theme":
		return a.cmdTheme(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usageText)
		return nil
	default:
		fmt.Fprint(os.Stderr, usageText)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	category := fs.String("category", "", "filter by category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := a.catalog.ListByCategory(ctx, *category)
	if err != nil {
		return err
	}

	printProducts(products)
	return nil
}

func (a *app) cmdSearch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: shopfront search <keyword>")
	}

	products, err := a.catalog.Search(ctx, args[0])
	if err != nil {
		return err
	}

	if len(products) == 0 {
		fmt.Printf("No products matching %q\n", args[0])
		return nil
	}
	printProducts(products)
	return nil
}

func (a *app) cmdProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: shopfront product <id>")
	}

	product, err := a.catalog.Get(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", product.Name)
	fmt.Printf("  Brand:     %s\n", product.Brand)
	fmt.Printf("  Category:  %s\n", product.Category)
	fmt.Printf("  Price:     %.2f\n", product.Price)
	fmt.Printf("  Stock:     %d\n", product.StockQuantity)
	fmt.Printf("  Available: %v\n", product.Available())
	if product.Description != "" {
		fmt.Printf("  %s\n", product.Description)
	}
	return nil
}

func (a *app) cmdAdd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: shopfront add <id>")
	}

	product, err := a.catalog.Get(ctx, args[0])
	if err != nil {
		return err
	}

	if err := a.cart.Add(ctx, *product); err != nil {
		var perr *cart.PersistenceError
		if errors.As(err, &perr) {
			// The line is in the cart; only the snapshot write failed.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", perr)
		} else {
			return err
		}
	}

	fmt.Printf("Added %s to cart\n", product.Name)
	return nil
}

func (a *app) cmdRemove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: shopfront remove <id>")
	}
	return a.reportPersistence(a.cart.Remove(ctx, args[0]))
}

func (a *app) cmdDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: shopfront delete <id>")
	}
	return a.reportPersistence(a.cart.Delete(ctx, args[0]))
}

func (a *app) cmdCart() error {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tBRAND\tPRICE\tQTY\tSUBTOTAL")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\t%.2f\n",
			item.Name, item.Brand, item.Price, item.Quantity, item.Subtotal())
	}
	w.Flush()
	fmt.Printf("\nTotal: %.2f\n", a.cart.Total())
	return nil
}

func (a *app) cmdClear(ctx context.Context) error {
	if err := a.reportPersistence(a.cart.Clear(ctx)); err != nil {
		return err
	}
	fmt.Println("Cart cleared")
	return nil
}

func (a *app) cmdCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	name := fs.String("name", "", "customer name")
	email := fs.String("email", "", "customer email")
	address := fs.String("address", "", "delivery address")
	mobile := fs.String("mobile", "", "10 digit mobile number")
	payment := fs.String("payment", checkout.PaymentCOD, "payment method: COD, UPI or CARD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	confirmation, err := a.submitter.Submit(ctx, checkout.CustomerDetails{
		Name:          *name,
		Email:         *email,
		Address:       *address,
		Mobile:        *mobile,
		PaymentMethod: *payment,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Order placed: %s\n", confirmation.OrderID)
	return nil
}

func (a *app) cmdOrders(ctx context.Context) error {
	orders, err := a.submitter.ListOrders(ctx)
	if err != nil {
		return err
	}

	if len(orders) == 0 {
		fmt.Println("No orders yet")
		return nil
	}

	for _, order := range orders {
		fmt.Printf("%s  %s  %s  total %.2f\n",
			order.OrderID, order.OrderDate, order.Status, order.Total())
		for _, item := range order.Items {
			fmt.Printf("    %s x%d  %.2f\n", item.ProductName, item.Quantity, item.TotalPrice)
		}
	}
	return nil
}

func (a *app) cmdTheme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println(a.prefs.Theme(ctx))
		return nil
	}
	if err := a.prefs.SetTheme(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("Theme set to %s\n", args[0])
	return nil
}

// reportPersistence downgrades a persistence failure to a warning: the
// in-memory cart is already updated, so the command still succeeds.
func (a *app) reportPersistence(err error) error {
	var perr *cart.PersistenceError
	if errors.As(err, &perr) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", perr)
		return nil
	}
	return err
}

func printProducts(products []model.Product) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBRAND\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%d\n",
			p.ID, p.Name, p.Brand, p.Category, p.Price, p.StockQuantity)
	}
	w.Flush()
}
