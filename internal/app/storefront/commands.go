package storefront

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cartdomain "github.com/Apurer/choufli-storefront/internal/domains/cart/domain"
	checkoutapp "github.com/Apurer/choufli-storefront/internal/domains/checkout/application"
	checkoutdomain "github.com/Apurer/choufli-storefront/internal/domains/checkout/domain"
	platformobservability "github.com/Apurer/choufli-storefront/internal/platform/observability"
)

const serviceName = "storefront"

// cli holds what the command tree shares. The app is opened lazily by the
// first command and reused across shell lines.
type cli struct {
	configPath  string
	in          *bufio.Reader
	out         io.Writer
	errOut      io.Writer
	interactive bool

	app      *App
	shutdown func(context.Context) error
}

// Execute runs the storefront CLI with process arguments and streams.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree on the given streams.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{in: bufio.NewReader(in), out: out, errOut: errOut}
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Choufli storefront: cart, promo code and cash-on-delivery checkout",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to the YAML config (default $"+ConfigEnv+")")
	root.AddCommand(c.commands()...)
	root.AddCommand(c.shellCommand())
	return root
}

func (c *cli) open(ctx context.Context) (*App, error) {
	if c.app != nil {
		return c.app, nil
	}
	path := c.configPath
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogOutput(c.errOut),
		platformobservability.WithLogLevel(slog.LevelWarn),
		platformobservability.WithoutDefaultExporter(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	var notifyIn *bufio.Reader
	if c.interactive {
		notifyIn = c.in
	}
	app, err := Open(ctx, cfg, NewTerminal(c.out, notifyIn), instruments)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	c.app = app
	c.shutdown = shutdown
	return app, nil
}

func (c *cli) close(ctx context.Context) error {
	if c.app == nil || c.interactive {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	if c.shutdown != nil {
		if ctx == nil {
			ctx = context.Background()
		}
		shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err = errors.Join(err, c.shutdown(shutdownCtx))
		c.shutdown = nil
	}
	return err
}

// run opens the app, runs fn and prints any pending cart render. Outside
// the shell the app is closed again so the store lock is released.
func (c *cli) run(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := c.open(ctx)
	if err != nil {
		return err
	}
	err = fn(ctx, app)
	app.Terminal().Flush()
	if !c.interactive {
		err = errors.Join(err, c.close(ctx))
	}
	return err
}

// commands builds a fresh set of cart commands, so flag values never leak
// from one shell line to the next.
func (c *cli) commands() []*cobra.Command {
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, app *App) error {
				app.Show(ctx)
				return nil
			})
		},
	}

	var price int64
	var size string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a product to the cart (size S unless --size is given)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var explicit *int64
			if cmd.Flags().Changed("price") {
				explicit = &price
			}
			var parsed cartdomain.Size
			if size != "" {
				s, err := cartdomain.ParseSize(size)
				if err != nil {
					return err
				}
				parsed = s
			}
			name := strings.Join(args, " ")
			return c.run(cmd, func(ctx context.Context, app *App) error {
				_, err := app.Add(ctx, name, explicit, parsed)
				return err
			})
		},
	}
	add.Flags().Int64Var(&price, "price", 0, "unit price in TND, overrides the catalog")
	add.Flags().StringVar(&size, "size", "", "size: S, M, L or XL")

	sizeCmd := &cobra.Command{
		Use:   "size INDEX SIZE",
		Short: "Change the size of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			parsed, err := cartdomain.ParseSize(args[1])
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, app *App) error {
				if err := app.ChangeSize(ctx, index, parsed); err != nil {
					return err
				}
				app.Show(ctx)
				return nil
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove INDEX",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, app *App) error {
				if _, err := app.Remove(ctx, index); err != nil {
					return err
				}
				app.Show(ctx)
				return nil
			})
		},
	}

	var customer checkoutdomain.Customer
	checkout := &cobra.Command{
		Use:   "checkout",
		Short: "Send the order, paid cash on delivery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, app *App) error {
				_, err := app.Checkout(ctx, customer)
				if errors.Is(err, checkoutapp.ErrEmptyCart) {
					return nil
				}
				return err
			})
		},
	}
	checkout.Flags().StringVar(&customer.Name, "name", "", "full name")
	checkout.Flags().StringVar(&customer.Phone, "phone", "", "phone number")
	checkout.Flags().StringVar(&customer.Address, "address", "", "delivery address")

	promo := &cobra.Command{
		Use:   "promo CODE",
		Short: "Apply the promo code to the promoted product (shell only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The discounted price only lives as long as the session.
			if !c.interactive {
				return ErrPromoNeedsShell
			}
			return c.run(cmd, func(ctx context.Context, app *App) error {
				message, err := app.Promo(ctx, args[0])
				if message != "" {
					fmt.Fprintln(cmd.OutOrStdout(), message)
				}
				if message == "" && err != nil {
					return err
				}
				c.printPrice(cmd.OutOrStdout(), app)
				return nil
			})
		},
	}

	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Show catalog prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(_ context.Context, app *App) error {
				for _, p := range app.Catalog() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d %s\n", p.Name, p.Price, cartdomain.Currency)
				}
				return nil
			})
		},
	}

	return []*cobra.Command{show, add, sizeCmd, remove, checkout, promo, priceCmd}
}

func (c *cli) printPrice(out io.Writer, app *App) {
	product := app.PromoProduct()
	fmt.Fprintf(out, "%s: %d %s\n", product.Name, product.Price, cartdomain.Currency)
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("index must be a number, got %q", raw)
	}
	return index, nil
}
