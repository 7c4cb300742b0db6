package sessiongate

import (
	"context"
	"testing"

	"github.com/campaignwala/sessiongate/nav"
	"github.com/campaignwala/sessiongate/storage/memory"
)

func newNavManager(t *testing.T) *Manager {
	t.Helper()

	tree := []nav.Node{
		{Key: "dashboard", Label: "Dashboard", Path: "/moderator"},
		{Key: "leads", Label: "Leads", Path: "/leads", RequiredPermissions: []string{"leads.read"}, Children: []nav.Node{
			{Key: "leads-review", Label: "Review Queue", Path: "/leads/review", RequiredPermissions: []string{"leads.review"}},
		}},
		{Key: "wallet", Label: "Wallet", Path: "/wallet", RequiredPermissions: []string{"wallet.read"}},
	}

	m, err := New().
		WithStorage(memory.NewStore()).
		WithAuthClient(&fakeClient{loginPayload: moderatorPayload()}).
		WithMenu(RoleModerator, tree).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(m.Close)

	if err := m.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return m
}

func TestMenuFollowsPermissions(t *testing.T) {
	m := newNavManager(t)

	// Guests see nothing: no menu is registered for the guest role.
	if menu := m.Menu(); len(menu) != 0 {
		t.Fatalf("guest menu = %v", menu)
	}

	if _, err := m.Login(context.Background(), Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Moderator defaults hold leads.read and leads.review but not wallet.read.
	menu := m.Menu()
	if len(menu) != 2 {
		t.Fatalf("menu = %v", menu)
	}
	if menu[0].Key != "dashboard" || menu[1].Key != "leads" {
		t.Fatalf("menu keys = %q %q", menu[0].Key, menu[1].Key)
	}
	if len(menu[1].Children) != 1 || menu[1].Children[0].Key != "leads-review" {
		t.Fatalf("leads children = %v", menu[1].Children)
	}
}

func TestCurrentMenuItemGoesStaleAfterRevocation(t *testing.T) {
	m := newNavManager(t)
	if _, err := m.Login(context.Background(), Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	item := m.CurrentMenuItem("leads-review")
	if item == nil || item.Path != "/leads/review" {
		t.Fatalf("item = %v", item)
	}

	m.SetPermissions(context.Background(), []string{"leads.read"})

	if item := m.CurrentMenuItem("leads-review"); item != nil {
		t.Fatalf("stale key still resolves: %v", item)
	}
	// The parent remains current for its own key.
	if item := m.CurrentMenuItem("leads"); item == nil {
		t.Fatal("parent item lost")
	}
}

func TestBreadcrumbTrail(t *testing.T) {
	m := newNavManager(t)
	if _, err := m.Login(context.Background(), Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	trail := m.Breadcrumbs("leads-review")
	if len(trail) != 2 || trail[0].Key != "leads" || trail[1].Key != "leads-review" {
		t.Fatalf("trail = %v", trail)
	}
	if trail := m.Breadcrumbs("missing"); trail != nil {
		t.Fatalf("unknown key trail = %v", trail)
	}
}
