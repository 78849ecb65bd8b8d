package workflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"quote-workflow/internal/domain/profile"
	"quote-workflow/internal/domain/quote"
	"quote-workflow/internal/domain/uow"
	"quote-workflow/internal/infrastructure/metrics"
	"quote-workflow/internal/testutil/eventmock"
	"quote-workflow/internal/testutil/profilemock"
	"quote-workflow/internal/testutil/quotemock"
	"quote-workflow/internal/testutil/settingmock"
	"quote-workflow/internal/testutil/uowmock"
	"quote-workflow/internal/usecase/audit"
	"quote-workflow/internal/usecase/guardrail"
	"quote-workflow/internal/usecase/notification"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

var (
	sales   = profile.RequestContext{UserID: "U1", Role: profile.RoleSales, Email: "u1@acme.io", FullName: "Sam Sales"}
	sales2  = profile.RequestContext{UserID: "U2", Role: profile.RoleSales, Email: "u2@acme.io"}
	admin   = profile.RequestContext{UserID: "A1", Role: profile.RoleAdmin, Email: "a1@acme.io", FullName: "Ada Admin"}
	finance = profile.RequestContext{UserID: "F1", Role: profile.RoleFinance, Email: "f1@acme.io"}
	fin2    = profile.RequestContext{UserID: "F2", Role: profile.RoleFinance, Email: "f2@acme.io"}
	master  = profile.RequestContext{UserID: "M1", Role: profile.RoleMaster, Email: "m1@acme.io"}
)

type fakeNotifier struct {
	mu   sync.Mutex
	msgs []notification.Message
	err  error
}

func (n *fakeNotifier) Send(_ context.Context, m notification.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, m)
	return n.err
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

type harness struct {
	mem      *quotemock.Memory
	events   *eventmock.Repo
	settings *settingmock.Repo
	notifier *fakeNotifier
	profiles *profilemock.Repo
	metrics  *metrics.Metrics
	clock    *clock
	uc       *Usecase
}

type option func(*harness, *Deps)

// withoutAtomicClaim hides ClaimLane so claims take the degraded path.
func withoutAtomicClaim() option {
	return func(h *harness, d *Deps) { d.Quotes = h.mem.Fallback() }
}

func newHarness(t *testing.T, quotes []quote.Quote, opts ...option) *harness {
	t.Helper()
	h := &harness{
		mem:      quotemock.NewMemory(quotes...),
		events:   &eventmock.Repo{},
		settings: &settingmock.Repo{},
		notifier: &fakeNotifier{},
		profiles: &profilemock.Repo{Profiles: []profile.Profile{
			{ID: "F1", Email: "f1@acme.io", Role: "FINANCE"},
			{ID: "F2", Email: "f2@acme.io", Role: "finance"},
			{ID: "A1", Email: "a1@acme.io", Role: "LEVEL_3"},
		}},
		metrics: metrics.New(prometheus.NewRegistry()),
		clock:   &clock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
	}
	log := zerolog.Nop()
	d := Deps{
		Quotes:    h.mem,
		Profiles:  h.profiles,
		UoW:       uowmock.Passthrough(uow.Repos{Quotes: h.mem}),
		Guardrail: guardrail.NewUsecase(h.settings, log),
		Audit:     audit.NewWriter(h.events, h.metrics, log),
		Notifier:  h.notifier,
		Metrics:   h.metrics,
		Log:       log,
		BaseURL:   "https://app.acme.io",
		Now:       h.clock.now,
	}
	for _, o := range opts {
		o(h, &d)
	}
	h.uc = NewUsecase(d)
	return h
}

func strp(s string) *string { return &s }

func f64(v float64) *float64 { return &v }

func draftQuote(id, owner string) quote.Quote {
	q := quote.Quote{ID: id, CustomerName: "Acme Corp"}
	if owner != "" {
		q.OwnerID = strp(owner)
	}
	q.SetState(quote.StateDraft)
	return q
}

func quoteIn(id string, s quote.State) quote.Quote {
	q := draftQuote(id, "U1")
	q.SubmittedByEmail = strp("u1@acme.io")
	q.SetState(s)
	return q
}
