// Package app is the application shell. It builds every component from
// configuration, owns the session for the lifetime of the process and tears
// it down explicitly.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yashrajoria/storefront-client/cart"
	"github.com/yashrajoria/storefront-client/clients"
	"github.com/yashrajoria/storefront-client/config"
	"github.com/yashrajoria/storefront-client/logger"
	"github.com/yashrajoria/storefront-client/models"
	"github.com/yashrajoria/storefront-client/notify"
	"github.com/yashrajoria/storefront-client/services"
	"github.com/yashrajoria/storefront-client/session"
	"github.com/yashrajoria/storefront-client/storage"
	"github.com/yashrajoria/storefront-client/ui"
)

// Options overrides the collaborators New would otherwise build from config
type Options struct {
	Store    storage.Store
	Notifier notify.Notifier
	Badge    ui.Badge
	Redirect session.Redirector
	Logger   *zap.Logger
}

type App struct {
	Config   config.Config
	Log      *zap.Logger
	Store    storage.Store
	Notifier notify.Notifier

	Session   *session.Manager
	LocalCart *cart.LocalStore
	Gateway   *clients.GatewayClient
	Cart      *clients.CartClient
	Auth      *clients.AuthClient
	Catalog   *clients.CatalogClient
	Counter   *services.CartCounter
	Merger    *services.CartMergeService
	Errors    *services.ErrorHandler
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	log := logger.OrNop(opts.Logger)

	store := opts.Store
	if store == nil {
		var err error
		store, err = storage.Open(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewLogNotifier(log)
	}

	a := &App{
		Config:   cfg,
		Log:      log,
		Store:    store,
		Notifier: notifier,
	}

	a.Session = session.NewManager(store, notifier, opts.Redirect, cfg.LogoutDelay, log.Named("session"))
	a.LocalCart = cart.NewLocalStore(store, log.Named("cart"))

	a.Gateway = clients.NewGatewayClient(cfg.APIURL, cfg.RequestTimeout, log.Named("gateway"))
	a.Gateway.SetAuth(a.Session, a.Session.Logout)
	a.Cart = clients.NewCartClient(a.Gateway)
	a.Auth = clients.NewAuthClient(a.Gateway)
	a.Catalog = clients.NewCatalogClient(a.Gateway)

	a.Counter = services.NewCartCounter(a.LocalCart, a.Cart, a.Session, opts.Badge, log.Named("counter"))
	a.LocalCart.OnChange(a.Counter.Refresh)
	a.Merger = services.NewCartMergeService(a.LocalCart, a.Cart, notifier, log.Named("merge"))
	a.Errors = services.NewErrorHandler(notifier, a.Session, log.Named("errors"))

	return a, nil
}

// Init restores the cached session and refreshes the cart badge
func (a *App) Init(ctx context.Context) {
	a.Session.Init(ctx)
	a.Counter.Refresh(ctx)
}

// SignIn is the outcome of Login or Register. User is the profile the server
// returned; the session may already have ended again if the server rejected
// the new token during the merge.
type SignIn struct {
	User  models.User
	Merge services.MergeResult
}

// Login exchanges credentials for a session, then merges the anonymous cart
func (a *App) Login(ctx context.Context, username, password string) (SignIn, error) {
	resp, err := a.Auth.Login(ctx, username, password)
	if err != nil {
		return SignIn{}, err
	}
	return a.startSession(ctx, resp)
}

// Register creates an account, then merges the anonymous cart into it
func (a *App) Register(ctx context.Context, username, email, password string) (SignIn, error) {
	resp, err := a.Auth.Register(ctx, username, email, password)
	if err != nil {
		return SignIn{}, err
	}
	return a.startSession(ctx, resp)
}

func (a *App) startSession(ctx context.Context, resp *models.AuthResponse) (SignIn, error) {
	if err := a.Session.Login(ctx, resp.AccessToken, resp.User); err != nil {
		return SignIn{}, fmt.Errorf("store session: %w", err)
	}
	result := SignIn{User: resp.User, Merge: a.Merger.Merge(ctx)}
	a.Counter.Refresh(ctx)
	return result, nil
}

// AddToCart adds to the server cart when logged in and to the anonymous cart otherwise
func (a *App) AddToCart(ctx context.Context, itemID models.ItemID, quantity int) error {
	if !a.Session.IsLoggedIn(ctx) {
		return a.LocalCart.Add(ctx, itemID, quantity)
	}
	if _, err := a.Cart.AddItem(ctx, itemID, quantity); err != nil {
		return err
	}
	a.Counter.Refresh(ctx)
	return nil
}

// Teardown waits for pending redirects and flushes the logger
func (a *App) Teardown() {
	a.Session.Wait()
	_ = a.Log.Sync()
}
