package identity

import (
	"context"
	"errors"
	"testing"

	"quote-workflow/internal/domain/profile"
	"quote-workflow/internal/testutil/profilemock"
	"quote-workflow/pkg/apperr"

	"github.com/rs/zerolog"
)

type stubVerifier struct {
	user *AuthUser
	err  error
}

func (s stubVerifier) GetUser(context.Context, string) (*AuthUser, error) { return s.user, s.err }

func TestResolver_Resolve(t *testing.T) {
	profiles := &profilemock.Repo{Profiles: []profile.Profile{
		{ID: "U1", Email: "sales@x.io", FullName: "Sam Sales", Role: "LEVEL_2"},
		{ID: "A1", Email: "", FullName: "Ada Admin", Role: "level3"},
		{ID: "X1", Email: "x@x.io", Role: "GOD_MODE"},
	}}

	tests := []struct {
		name     string
		token    string
		verifier stubVerifier
		wantKind apperr.Kind
		want     *profile.RequestContext
	}{
		{
			name:     "missing token",
			token:    "  ",
			wantKind: apperr.KindUnauthenticated,
		},
		{
			name:     "verifier rejects",
			token:    "bad",
			verifier: stubVerifier{err: errors.New("signature invalid")},
			wantKind: apperr.KindUnauthenticated,
		},
		{
			name:     "no profile row",
			token:    "t",
			verifier: stubVerifier{user: &AuthUser{ID: "GHOST"}},
			wantKind: apperr.KindNotFound,
		},
		{
			name:     "legacy sales role normalized",
			token:    "t",
			verifier: stubVerifier{user: &AuthUser{ID: "U1", Email: "token@x.io"}},
			want:     &profile.RequestContext{UserID: "U1", Role: profile.RoleSales, Email: "sales@x.io", FullName: "Sam Sales"},
		},
		{
			name:     "legacy admin role, email from token",
			token:    "t",
			verifier: stubVerifier{user: &AuthUser{ID: "A1", Email: "ada@x.io"}},
			want:     &profile.RequestContext{UserID: "A1", Role: profile.RoleAdmin, Email: "ada@x.io", FullName: "Ada Admin"},
		},
		{
			name:     "unknown role never elevated",
			token:    "t",
			verifier: stubVerifier{user: &AuthUser{ID: "X1"}},
			want:     &profile.RequestContext{UserID: "X1", Role: profile.RoleSales, Email: "x@x.io"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.verifier, profiles, zerolog.Nop())
			got, err := r.Resolve(context.Background(), tt.token)
			if tt.wantKind != "" {
				if !apperr.Is(err, tt.wantKind) {
					t.Fatalf("want kind %s, got %v", tt.wantKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if *got != *tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolver_ProfileStoreError(t *testing.T) {
	profiles := &profilemock.Repo{GetByIDFn: func(context.Context, string) (*profile.Profile, error) {
		return nil, errors.New("db down")
	}}
	r := NewResolver(stubVerifier{user: &AuthUser{ID: "U1"}}, profiles, zerolog.Nop())
	if _, err := r.Resolve(context.Background(), "t"); !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("want internal, got %v", err)
	}
}

func TestActorContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := ActorFrom(ctx); ok {
		t.Fatalf("empty ctx should have no actor")
	}
	rc := &profile.RequestContext{UserID: "U1", Role: profile.RoleMaster}
	got, ok := ActorFrom(WithActor(ctx, rc))
	if !ok || got != rc {
		t.Fatalf("actor not round-tripped")
	}
}
