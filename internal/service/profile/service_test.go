package profile

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/janisto/travel-profiles/internal/platform/auth"
	"github.com/janisto/travel-profiles/internal/platform/password"
	"github.com/janisto/travel-profiles/internal/platform/storage"
	"github.com/janisto/travel-profiles/internal/platform/timeutil"
	profilerepo "github.com/janisto/travel-profiles/internal/repository/profile"
)

const testKey = "0123456789abcdef0123456789abcdef"

type fixture struct {
	svc    *Manager
	repo   *profilerepo.MockRepository
	images *storage.MockStore
	tokens *auth.Issuer
	hasher *password.Hasher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := auth.NewIssuer(auth.Config{
		Key:               testKey,
		Issuer:            "test-issuer",
		Audience:          "test-audience",
		Subject:           "test-subject",
		ExpirationMinutes: 5,
	})
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	f := &fixture{
		repo:   profilerepo.NewMockRepository(),
		images: storage.NewMockStore(),
		tokens: tokens,
		hasher: password.NewHasher(bcrypt.MinCost),
	}
	f.svc = NewManager(f.repo, f.images, f.hasher, f.tokens)
	return f
}

func (f *fixture) seed(t *testing.T, name, email, plain string) *Profile {
	t.Helper()
	p, err := f.svc.Add(context.Background(), &Profile{
		Name:         name,
		EmailID:      email,
		MobileNumber: 9876543210,
		Password:     plain,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return p
}

func TestAddHashesPasswordAndAssignsID(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, "Ada", "ada@example.com", "secret")

	if p.CustomerID == 0 {
		t.Fatal("expected customer id to be assigned")
	}
	if p.Name != "Ada" || p.EmailID != "ada@example.com" || p.MobileNumber != 9876543210 {
		t.Fatalf("unexpected stored fields: %+v", p)
	}
	if p.Password == "secret" || !f.hasher.Verify("secret", p.Password) {
		t.Fatal("expected a bcrypt hash of the supplied password")
	}
}

func TestAddValidatesContact(t *testing.T) {
	f := newFixture(t)
	cases := []Profile{
		{Name: "a", MobileNumber: 12345},
		{Name: "a", MobileNumber: 12345678901},
		{Name: "a", EmailID: "not-an-email"},
		{Name: "a", EmailID: "Ada <ada@example.com>"},
	}
	for _, in := range cases {
		if _, err := f.svc.Add(context.Background(), &in); !errors.Is(err, ErrInvalidData) {
			t.Errorf("Add(%+v) error = %v, want ErrInvalidData", in, err)
		}
	}
	if _, err := f.svc.Add(context.Background(), &Profile{Name: "no contact"}); err != nil {
		t.Fatalf("profile without contact details should be accepted: %v", err)
	}
}

func TestUpdatePreservesPasswordAndImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seed(t, "Ada", "ada@example.com", "secret")
	if _, err := f.svc.UpdateImage(ctx, p.CustomerID, &ImageUpload{
		Reader: strings.NewReader("png"), ContentType: "image/png", Size: 3,
	}); err != nil {
		t.Fatalf("UpdateImage: %v", err)
	}
	stored, _ := f.repo.Get(ctx, p.CustomerID)

	updated, err := f.svc.Update(ctx, &Profile{
		CustomerID:    p.CustomerID,
		Name:          "Ada Lovelace",
		Dob:           timeutil.Date{Year: 1815, Month: time.December, Day: 10},
		Gender:        "F",
		MaritalStatus: "Married",
		MobileNumber:  1234567890,
		EmailID:       "ada@example.org",
		Password:      "ignored",
		Image:         "ignored.png",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Ada Lovelace" || updated.EmailID != "ada@example.org" || updated.Dob.Year != 1815 {
		t.Fatalf("fields not overwritten: %+v", updated)
	}
	if updated.Password != stored.Password || updated.Image != stored.Image {
		t.Fatal("password hash and image must be preserved")
	}
}

func TestUpdateMissing(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Update(context.Background(), &Profile{CustomerID: 99, Name: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddGetDeleteRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seed(t, "Ada", "ada@example.com", "secret")
	ref, err := f.svc.UpdateImage(ctx, p.CustomerID, &ImageUpload{
		Reader: strings.NewReader("jpeg"), ContentType: "image/jpeg", Size: 4,
	})
	if err != nil {
		t.Fatalf("UpdateImage: %v", err)
	}

	if _, err := f.svc.Get(ctx, p.CustomerID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	removed, err := f.svc.Delete(ctx, p.CustomerID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed.CustomerID != p.CustomerID {
		t.Fatalf("Delete returned %d, want %d", removed.CustomerID, p.CustomerID)
	}
	if f.images.Has(ref.Image) {
		t.Fatal("image file should be removed with the profile")
	}
	if _, err := f.svc.Get(ctx, p.CustomerID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := f.svc.Delete(ctx, p.CustomerID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestLoginDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seed(t, "Ada", "ada@example.com", "secret")

	got, err := f.svc.GetLogin(ctx, p.CustomerID)
	if err != nil {
		t.Fatalf("GetLogin: %v", err)
	}
	if got.EmailID != "ada@example.com" || got.MobileNumber != 9876543210 {
		t.Fatalf("unexpected projection: %+v", got)
	}

	email := "ADA@Example.org"
	updated, err := f.svc.UpdateLogin(ctx, p.CustomerID, LoginUpdate{EmailID: &email})
	if err != nil {
		t.Fatalf("UpdateLogin: %v", err)
	}
	if updated.EmailID != "ada@example.org" || updated.MobileNumber != 9876543210 {
		t.Fatalf("nil mobile must keep stored value: %+v", updated)
	}

	bad := int64(42)
	if _, err := f.svc.UpdateLogin(ctx, p.CustomerID, LoginUpdate{MobileNumber: &bad}); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
	if _, err := f.svc.GetLogin(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPersonalDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seed(t, "Ada", "ada@example.com", "secret")

	in := PersonalDetails{
		Name:          "Augusta Ada",
		Dob:           timeutil.Date{Year: 1815, Month: time.December, Day: 10},
		Gender:        "F",
		MaritalStatus: "Single",
	}
	got, err := f.svc.UpdateDetails(ctx, p.CustomerID, in)
	if err != nil {
		t.Fatalf("UpdateDetails: %v", err)
	}
	in.CustomerID = p.CustomerID
	if *got != in {
		t.Fatalf("UpdateDetails = %+v, want %+v", got, in)
	}
	read, err := f.svc.GetDetails(ctx, p.CustomerID)
	if err != nil || *read != in {
		t.Fatalf("GetDetails = %+v, %v", read, err)
	}
	login, _ := f.svc.GetLogin(ctx, p.CustomerID)
	if login.EmailID != "ada@example.com" {
		t.Fatal("personal update must not touch contact fields")
	}
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seed(t, "Ada", "ada@example.com", "old-secret")
	f.svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	res, err := f.svc.ChangePassword(ctx, p.CustomerID, "old-secret", "new-secret")
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if res.CustomerID != p.CustomerID || !res.ChangedAt.Equal(f.svc.now()) {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !f.hasher.Verify("new-secret", res.Hash) || f.hasher.Verify("old-secret", res.Hash) {
		t.Fatal("new hash must verify the new password only")
	}
	stored, _ := f.repo.Get(ctx, p.CustomerID)
	if stored.Password != res.Hash {
		t.Fatal("hash not persisted")
	}
}

func TestChangePasswordFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seed(t, "Ada", "ada@example.com", "secret")

	tests := []struct {
		name     string
		id       int64
		old, new string
		want     error
	}{
		{"missing profile", 999, "secret", "x", ErrNotFound},
		{"empty old", p.CustomerID, "", "x", ErrInvalidData},
		{"empty new", p.CustomerID, "secret", "", ErrInvalidData},
		{"wrong old", p.CustomerID, "nope", "x", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ChangePassword(ctx, tt.id, tt.old, tt.new)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	noHash := f.seed(t, "NoHash", "nohash@example.com", "")
	if _, err := f.svc.ChangePassword(ctx, noHash.CustomerID, "anything", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("profile without hash: got %v", err)
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.svc.Register(ctx, Registration{Name: " Grace ", EmailID: "Grace@Example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got.CustomerID == 0 || got.Name != "Grace" || got.EmailID != "grace@example.com" {
		t.Fatalf("unexpected result: %+v", got)
	}
	stored, _ := f.repo.Get(ctx, got.CustomerID)
	if !f.hasher.Verify("pw", stored.Password) {
		t.Fatal("stored password must be a hash of the registration password")
	}

	if _, err := f.svc.Register(ctx, Registration{Name: "x", EmailID: "x@example.com"}); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("missing password: got %v", err)
	}
	if _, err := f.svc.Register(ctx, Registration{Name: "x", EmailID: "nope", Password: "pw"}); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("bad email: got %v", err)
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seed(t, "Ada", "ada@example.com", "secret")

	token, err := f.svc.Login(ctx, Credentials{EmailID: "ADA@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := f.tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.CustomerID != strconv.FormatInt(p.CustomerID, 10) || claims.Name != "Ada" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" || claims.Subject != "test-subject" {
		t.Fatalf("expected jti and subject, got %+v", claims.RegisteredClaims)
	}
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "Ada", "ada@example.com", "secret")
	f.seed(t, "", "anon@example.com", "secret")

	tests := []struct {
		name string
		in   Credentials
		want error
	}{
		{"empty email", Credentials{Password: "secret"}, ErrInvalidData},
		{"empty password", Credentials{EmailID: "ada@example.com"}, ErrInvalidData},
		{"unknown email", Credentials{EmailID: "who@example.com", Password: "secret"}, ErrInvalidCredentials},
		{"wrong password", Credentials{EmailID: "ada@example.com", Password: "nope"}, ErrInvalidCredentials},
		{"no name", Credentials{EmailID: "anon@example.com", Password: "secret"}, ErrNameRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Login(ctx, tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoginRepositoryFailure(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("db down")
	f.repo.Err = boom
	_, err := f.svc.Login(context.Background(), Credentials{EmailID: "a@example.com", Password: "x"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestUpdateImageReplacesPreviousFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seed(t, "Ada", "ada@example.com", "secret")

	first, err := f.svc.UpdateImage(ctx, p.CustomerID, &ImageUpload{
		Reader: strings.NewReader("one"), ContentType: "image/png", Size: 3,
	})
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if !strings.HasSuffix(first.Image, ".png") || len(first.Image) != 32+len(".png") {
		t.Fatalf("unexpected image name %q", first.Image)
	}
	second, err := f.svc.UpdateImage(ctx, p.CustomerID, &ImageUpload{
		Reader: strings.NewReader("two"), ContentType: "image/jpeg; charset=binary", Size: 3,
	})
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if second.Image == first.Image || !strings.HasSuffix(second.Image, ".jpg") {
		t.Fatalf("expected a fresh .jpg name, got %q after %q", second.Image, first.Image)
	}
	if f.images.Has(first.Image) || !f.images.Has(second.Image) || f.images.Len() != 1 {
		t.Fatal("previous image must be replaced")
	}

	view, err := f.svc.ViewImage(ctx, p.CustomerID)
	if err != nil || view.Image != second.Image {
		t.Fatalf("ViewImage = %+v, %v", view, err)
	}
	rc, contentType, err := f.svc.OpenImage(ctx, p.CustomerID)
	if err != nil {
		t.Fatalf("OpenImage: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "two" || contentType != "image/jpeg" {
		t.Fatalf("OpenImage = %q (%s)", data, contentType)
	}
}

func TestUpdateImageFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seed(t, "Ada", "ada@example.com", "secret")

	if _, err := f.svc.UpdateImage(ctx, 999, &ImageUpload{Reader: strings.NewReader("x"), Size: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing profile: got %v", err)
	}
	if _, err := f.svc.UpdateImage(ctx, p.CustomerID, nil); !errors.Is(err, ErrImageRequired) {
		t.Fatalf("nil upload: got %v", err)
	}
	if _, err := f.svc.UpdateImage(ctx, p.CustomerID, &ImageUpload{Reader: strings.NewReader(""), Size: 0}); !errors.Is(err, ErrImageRequired) {
		t.Fatalf("empty upload: got %v", err)
	}

	f.images.SaveErr = errors.New("disk full")
	if _, err := f.svc.UpdateImage(ctx, p.CustomerID, &ImageUpload{Reader: strings.NewReader("x"), Size: 1}); err == nil {
		t.Fatal("expected save failure")
	}
	stored, _ := f.repo.Get(ctx, p.CustomerID)
	if stored.Image != "" {
		t.Fatal("failed upload must not change the stored image")
	}
}

func TestOpenImageWithoutImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seed(t, "Ada", "ada@example.com", "secret")

	if _, _, err := f.svc.OpenImage(ctx, p.CustomerID); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
	stored, _ := f.repo.Get(ctx, p.CustomerID)
	stored.Image = "0123456789abcdef0123456789abcdef.png"
	if _, err := f.repo.Update(ctx, stored); err != nil {
		t.Fatal(err)
	}
	if _, _, err := f.svc.OpenImage(ctx, p.CustomerID); !errors.Is(err, ErrNoImage) {
		t.Fatalf("missing file: expected ErrNoImage, got %v", err)
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrNotFound, "not_found"},
		{ErrInvalidData, "invalid_data"},
		{ErrInvalidCredentials, "invalid_credentials"},
		{ErrImageRequired, "image_missing"},
		{ErrNameRequired, "name_missing"},
		{errors.New("boom"), "internal_error"},
	}
	for _, tt := range tests {
		if got := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
