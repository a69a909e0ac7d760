package main

import (
	"bufio"
	"context"
	"errors"
	"eshop-client/internal/appenv"
	"eshop-client/internal/domain"
	"eshop-client/internal/infrastructure/mock"
	"eshop-client/internal/navigation"
	"eshop-client/internal/viewmodel"
	"eshop-client/pkg/logger"
	"eshop-client/pkg/utils"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

var errQuit = errors.New("quit")

type settingsStore interface {
	domain.SettingsService
	SetUserID(id string)
}

// shell is the line-oriented front end over the two view-models.
type shell struct {
	in       io.Reader
	out      io.Writer
	store    settingsStore
	env      *appenv.Environment
	identity *mock.Identity
	nav      *navigation.Stack
	catalog  *viewmodel.CatalogViewModel
	basket   *viewmodel.BasketViewModel
}

type shellCommand struct {
	usage string
	help  string
	run   func(s *shell, ctx context.Context, args []string) error
}

var shellCommands map[string]shellCommand

func init() {
	shellCommands = map[string]shellCommand{
		"login":        {"login [user]", "sign in with a mock token", (*shell).login},
		"logout":       {"logout", "forget the access token", (*shell).logout},
		"token":        {"token <jwt>", "use an access token from the identity server", (*shell).token},
		"mocks":        {"mocks on|off", "switch between mock and remote services", (*shell).mocks},
		"catalog":      {"catalog", "reload and list the catalog", (*shell).listCatalog},
		"brands":       {"brands", "list brands", (*shell).listBrands},
		"types":        {"types", "list types", (*shell).listTypes},
		"brand":        {"brand <id|->", "select or clear the brand filter", (*shell).selectBrand},
		"type":         {"type <id|->", "select or clear the type filter", (*shell).selectType},
		"filter":       {"filter", "apply the brand and type filter", (*shell).filter},
		"clear-filter": {"clear-filter", "drop the filter and reload the catalog", (*shell).clearFilter},
		"add":          {"add <productId>", "add one unit of a product to the basket", (*shell).add},
		"basket-add":   {"basket-add <productId> [qty]", "add a line from the basket screen", (*shell).basketAdd},
		"basket":       {"basket", "show the basket", (*shell).showBasket},
		"remove":       {"remove <productId>", "remove a basket line", (*shell).remove},
		"clear":        {"clear", "empty the local basket list", (*shell).clear},
		"checkout":     {"checkout", "hand the basket to checkout", (*shell).checkout},
		"where":        {"where", "show the navigation stack", (*shell).where},
		"back":         {"back", "go back one screen", (*shell).back},
		"help":         {"help", "show this help", (*shell).help},
		"quit":         {"quit", "leave", func(*shell, context.Context, []string) error { return errQuit }},
	}
}

func (s *shell) run(ctx context.Context) error {
	// The basket screen loads its lines whenever it is shown.
	s.nav.Observe(func(c navigation.Change) {
		if c.Current.Route != domain.RouteBasket {
			return
		}
		if err := s.basket.Initialize(ctx); err != nil {
			logger.WithContext(ctx).Warn().Err(err).Msg("Failed to load basket")
		}
	})

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	if s.store.AuthAccessToken() == "" {
		fmt.Fprintln(s.out, "Not signed in. Use 'login' or 'token <jwt>'.")
	} else if err := s.catalog.Initialize(ctx); err != nil {
		fmt.Fprintln(s.out, "error:", err)
	}

	for {
		s.prompt()
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			err := s.exec(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintln(s.out, "error:", err)
			}
		}
	}
}

func (s *shell) prompt() {
	fmt.Fprintf(s.out, "%s [%d]> ", s.nav.Current().Route, s.catalog.BadgeCount())
}

func (s *shell) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := strings.ToLower(fields[0])
	if name == "exit" {
		name = "quit"
	}
	cmd, ok := shellCommands[name]
	if !ok {
		return fmt.Errorf("unknown command %q, try 'help'", fields[0])
	}
	return cmd.run(s, ctx, fields[1:])
}

// --- session ---

func (s *shell) login(ctx context.Context, args []string) error {
	if !s.env.UsingMocks() {
		return errors.New("login issues mock tokens only; use 'token <jwt>' with remote services")
	}
	user := ""
	if len(args) > 0 {
		user = args[0]
	}
	token, err := s.identity.Login(user)
	if err != nil {
		return err
	}
	info, err := s.identity.GetUserInfo(ctx, token)
	if err != nil {
		return err
	}
	s.store.SetAuthAccessToken(token)
	s.store.SetUserID(info.UserID)
	if err := s.store.Save(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Signed in as %s (%s)\n", info.PreferredUsername, info.UserID)
	return s.catalog.Initialize(ctx)
}

func (s *shell) logout(ctx context.Context, _ []string) error {
	s.store.SetAuthAccessToken("")
	s.store.SetUserID("")
	s.basket.ClearItems()
	return s.store.Save()
}

func (s *shell) token(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: token <jwt>")
	}
	s.store.SetAuthAccessToken(args[0])
	info, err := s.env.UserService().GetUserInfo(ctx, args[0])
	if err != nil {
		return err
	}
	s.store.SetUserID(info.UserID)
	if err := s.store.Save(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Token accepted for %s\n", info.UserID)
	return nil
}

func (s *shell) mocks(ctx context.Context, args []string) error {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return errors.New("usage: mocks on|off")
	}
	s.store.SetUseMocks(args[0] == "on")
	s.env.Apply(s.store)
	if err := s.store.Save(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Mock services %s\n", args[0])
	return nil
}

// --- catalog ---

func (s *shell) listCatalog(ctx context.Context, _ []string) error {
	if err := s.catalog.Initialize(ctx); err != nil {
		return err
	}
	s.renderProducts()
	return nil
}

func (s *shell) renderProducts() {
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBRAND\tTYPE\tPRICE")
	for _, p := range s.catalog.Products().Items() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, utils.Truncate(p.Name, 32), p.CatalogBrand, p.CatalogType, utils.FormatMoney(p.Price))
	}
	tw.Flush()
}

func (s *shell) listBrands(ctx context.Context, _ []string) error {
	selected := s.catalog.Brand()
	for _, b := range s.catalog.Brands().Items() {
		mark := " "
		if selected != nil && selected.ID == b.ID {
			mark = "*"
		}
		fmt.Fprintf(s.out, "%s %s\t%s\n", mark, b.ID, b.Brand)
	}
	return nil
}

func (s *shell) listTypes(ctx context.Context, _ []string) error {
	selected := s.catalog.Type()
	for _, t := range s.catalog.Types().Items() {
		mark := " "
		if selected != nil && selected.ID == t.ID {
			mark = "*"
		}
		fmt.Fprintf(s.out, "%s %s\t%s\n", mark, t.ID, t.Type)
	}
	return nil
}

// ensureFilterScreen opens the filter screen unless it is already on top.
func (s *shell) ensureFilterScreen(ctx context.Context) error {
	if s.nav.Current().Route == domain.RouteFilter {
		return nil
	}
	return s.catalog.ShowFilterCommand.Run(ctx)
}

func (s *shell) selectBrand(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: brand <id|->")
	}
	if err := s.ensureFilterScreen(ctx); err != nil {
		return err
	}
	if args[0] == "-" {
		s.catalog.SetBrand(nil)
		return nil
	}
	for _, b := range s.catalog.Brands().Items() {
		if b.ID == args[0] {
			s.catalog.SetBrand(&b)
			return nil
		}
	}
	return fmt.Errorf("brand %s: %w", args[0], domain.ErrNotFound)
}

func (s *shell) selectType(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: type <id|->")
	}
	if err := s.ensureFilterScreen(ctx); err != nil {
		return err
	}
	if args[0] == "-" {
		s.catalog.SetType(nil)
		return nil
	}
	for _, t := range s.catalog.Types().Items() {
		if t.ID == args[0] {
			s.catalog.SetType(&t)
			return nil
		}
	}
	return fmt.Errorf("type %s: %w", args[0], domain.ErrNotFound)
}

func (s *shell) filter(ctx context.Context, _ []string) error {
	if err := s.ensureFilterScreen(ctx); err != nil {
		return err
	}
	if err := s.catalog.FilterCommand.Run(ctx); err != nil {
		return err
	}
	s.renderProducts()
	return nil
}

func (s *shell) clearFilter(ctx context.Context, _ []string) error {
	if err := s.ensureFilterScreen(ctx); err != nil {
		return err
	}
	if err := s.catalog.ClearFilterCommand.Run(ctx); err != nil {
		return err
	}
	s.renderProducts()
	return nil
}

func (s *shell) add(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: add <productId>")
	}
	for _, p := range s.catalog.Products().Items() {
		if p.ID == args[0] {
			s.catalog.SetSelectedProduct(&p)
			if err := s.catalog.AddCatalogItemCommand.Execute(ctx, &p); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Added %s, %d line(s) in basket\n", p.Name, s.catalog.BadgeCount())
			return nil
		}
	}
	return fmt.Errorf("product %s: %w", args[0], domain.ErrNotFound)
}

// --- basket ---

func (s *shell) basketAdd(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: basket-add <productId> [qty]")
	}
	qty := 1
	if len(args) == 2 {
		if qty = utils.ParseInt(args[1], 0); qty <= 0 {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
	}
	product, err := s.env.CatalogService().GetCatalogItem(ctx, args[0])
	if err != nil {
		return err
	}
	line := product.ToBasketItem()
	line.Quantity = qty
	if err := s.basket.AddCommand.Execute(ctx, line); err != nil {
		return err
	}
	s.renderBasket()
	return nil
}

func (s *shell) showBasket(ctx context.Context, _ []string) error {
	if s.nav.Current().Route != domain.RouteBasket {
		if err := s.catalog.ViewBasketCommand.Run(ctx); err != nil {
			return err
		}
	} else if err := s.basket.Initialize(ctx); err != nil {
		return err
	}
	s.renderBasket()
	return nil
}

func (s *shell) renderBasket() {
	items := s.basket.BasketItems().Items()
	if len(items) == 0 {
		fmt.Fprintln(s.out, "Basket is empty")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tQTY\tUNIT\tTOTAL")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			it.ProductID, utils.Truncate(it.ProductName, 32), it.Quantity,
			utils.FormatMoney(it.UnitPrice), utils.FormatMoney(it.LineTotal()))
	}
	fmt.Fprintf(tw, "\t\t%d\t\t%s\n", s.basket.BadgeCount(), utils.FormatMoney(s.basket.Total()))
	tw.Flush()
}

func (s *shell) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: remove <productId>")
	}
	for _, it := range s.basket.BasketItems().Items() {
		if it.ProductID == args[0] {
			if err := s.basket.DeleteCommand.Execute(ctx, it); err != nil {
				return err
			}
			s.renderBasket()
			return nil
		}
	}
	return fmt.Errorf("basket line for product %s: %w", args[0], domain.ErrNotFound)
}

func (s *shell) clear(ctx context.Context, _ []string) error {
	s.basket.ClearItems()
	s.renderBasket()
	return nil
}

func (s *shell) checkout(ctx context.Context, _ []string) error {
	if s.basket.BasketItems().Len() == 0 {
		fmt.Fprintln(s.out, "Basket is empty, nothing to check out")
		return nil
	}
	if err := s.basket.CheckoutCommand.Run(ctx); err != nil {
		return err
	}
	handed := s.env.BasketService().LocalBasketItems()
	fmt.Fprintf(s.out, "Checking out %d line(s), %s\n", len(handed), utils.FormatMoney(domain.SumTotal(handed)))
	return nil
}

// --- navigation ---

func (s *shell) where(ctx context.Context, _ []string) error {
	fmt.Fprintln(s.out, strings.Join(s.nav.Routes(), " > "))
	return nil
}

func (s *shell) back(ctx context.Context, _ []string) error {
	return s.nav.Pop(ctx)
}

func (s *shell) help(ctx context.Context, _ []string) error {
	order := []string{
		"login", "logout", "token", "mocks",
		"catalog", "brands", "types", "brand", "type", "filter", "clear-filter", "add",
		"basket", "basket-add", "remove", "clear", "checkout",
		"where", "back", "help", "quit",
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, name := range order {
		c := shellCommands[name]
		fmt.Fprintf(tw, "  %s\t%s\n", c.usage, c.help)
	}
	return tw.Flush()
}
