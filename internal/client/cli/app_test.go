package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/packadmin/internal/client/client"
	"github.com/dmitrijs2005/packadmin/internal/client/config"
	"github.com/dmitrijs2005/packadmin/internal/client/models"
	"github.com/dmitrijs2005/packadmin/internal/client/services"
	"github.com/dmitrijs2005/packadmin/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer is a minimal in-memory rendition of the remote data service.
type fakeServer struct {
	mu sync.Mutex

	packs        string
	transactions string
	password     string

	deletes      []string
	imageDeletes []int64
	sales        int
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	t.Helper()
	f := &fakeServer{
		packs: `[
			{"id":1,"brand":"Nike","category":"shoes","price":"50","NumberofItems":2,"created_date":"2024-01-02T10:00:00Z","status":"available"},
			{"id":2,"brand":"Adidas","category":"shoes","price":"20","NumberofItems":1,"created_date":"2024-01-01T10:00:00Z","status":"available"},
			{"id":3,"brand":"Puma","category":"bags","price":"35","NumberofItems":3,"created_date":"2024-01-03T10:00:00Z","status":"sold"}
		]`,
		transactions: `[{"id":42,"pack_id":3,"sale_date":"2024-02-01T10:00:00Z","amount":"40","profit":"5"}]`,
		password:     "good",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /packs", f.raw(func() string { return f.packs }))
	mux.HandleFunc("GET /aggregated-packs", f.raw(func() string {
		return `[{"category":"shoes","number_of_packs":2,"number_of_items":3,"packs_sold":0,"total_price":"70"}]`
	}))
	mux.HandleFunc("GET /categories", f.raw(func() string { return `["shoes","bags"]` }))
	mux.HandleFunc("GET /items", f.raw(func() string { return `[{"id":5,"pack_id":1,"name":"left shoe"}]` }))
	mux.HandleFunc("GET /transactions", f.raw(func() string { return f.transactions }))
	mux.HandleFunc("DELETE /transactions/{id}", f.guarded)
	mux.HandleFunc("DELETE /items/{id}", f.guarded)
	mux.HandleFunc("DELETE /images/delete", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ImageIDs []int64 `json:"imageIds"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.imageDeletes = append(f.imageDeletes, body.ImageIDs...)
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("POST /packs/{id}/sold", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.sales++
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"id":43,"pack_id":1,"sale_date":"2024-03-01T10:00:00Z","amount":"60","profit":"10"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeServer) raw(body func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body()))
	}
}

func (f *fakeServer) guarded(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	defer f.mu.Unlock()
	if body.Password != f.password {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Wrong password"}`))
		return
	}
	f.deletes = append(f.deletes, r.URL.Path)
	_, _ = w.Write([]byte(`{"success":true}`))
}

func newTestApp(t *testing.T, srv *httptest.Server, input string) (*App, *bytes.Buffer) {
	t.Helper()
	c, err := client.NewHTTPClient(srv.URL, client.WithTimeout(2*time.Second))
	require.NoError(t, err)

	inv := services.NewInventoryService(c, nil, logging.Nop())
	out := &bytes.Buffer{}
	a := newApp(&config.Config{PageSize: 2}, inv, logging.Nop(), bufio.NewReader(strings.NewReader(input)), out)
	require.NoError(t, inv.Refresh(context.Background()))
	return a, out
}

func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	old := readPassword
	i := 0
	readPassword = func(int) ([]byte, error) {
		pw := pws[i%len(pws)]
		i++
		return []byte(pw), nil
	}
	t.Cleanup(func() { readPassword = old })
}

func TestApp_BrowsePacks(t *testing.T) {
	_, srv := newFakeServer(t)
	a, out := newTestApp(t, srv, "")
	ctx := context.Background()

	require.NoError(t, a.ShowView(ctx, "packs"))
	assert.Contains(t, out.String(), "Page 1/2 (3 records)")
	assert.Contains(t, out.String(), "sort=price ascending")
	// cheapest first
	assert.Less(t, strings.Index(out.String(), "Adidas"), strings.Index(out.String(), "Puma"))
	assert.NotContains(t, out.String(), "Nike")

	out.Reset()
	require.NoError(t, a.Next(ctx))
	assert.Contains(t, out.String(), "Nike")
	assert.Contains(t, out.String(), "Page 2/2 (3 records)")

	out.Reset()
	require.NoError(t, a.Next(ctx))
	assert.Contains(t, out.String(), "Page 2/2")

	out.Reset()
	require.NoError(t, a.Search(ctx, "shoes"))
	assert.Contains(t, out.String(), "Page 1/1 (2 records)")
	assert.NotContains(t, out.String(), "Puma")

	out.Reset()
	require.NoError(t, a.Sort(ctx, "price"))
	assert.Contains(t, out.String(), "sort=price descending")
	assert.Less(t, strings.Index(out.String(), "Nike"), strings.Index(out.String(), "Adidas"))

	out.Reset()
	require.NoError(t, a.Search(ctx, "nothing-matches"))
	assert.Contains(t, out.String(), "Page 1/1 (0 records)")
}

func TestApp_PageAndViews(t *testing.T) {
	_, srv := newFakeServer(t)
	a, out := newTestApp(t, srv, "")
	ctx := context.Background()

	require.NoError(t, a.Page(ctx, "9"))
	assert.Contains(t, out.String(), "Page 2/2")
	assert.Error(t, a.Page(ctx, "x"))

	out.Reset()
	require.NoError(t, a.ShowView(ctx, "dashboard"))
	assert.Contains(t, out.String(), "TOTAL PRICE")
	assert.Contains(t, out.String(), "70.00")

	out.Reset()
	require.NoError(t, a.ShowView(ctx, "items"))
	assert.Contains(t, out.String(), "left shoe")

	assert.ErrorIs(t, a.ShowView(ctx, "nope"), errUnknownView)
	assert.Equal(t, viewItems, a.view)

	out.Reset()
	require.NoError(t, a.Categories(ctx))
	assert.Equal(t, " - shoes\n - bags\n", out.String())
}

func TestApp_SortByBadDateIsReported(t *testing.T) {
	f, srv := newFakeServer(t)
	f.packs = `[{"id":1,"brand":"A","price":"1","created_date":"yesterday"},{"id":2,"brand":"B","price":"2","created_date":"2024-01-01"}]`
	a, out := newTestApp(t, srv, "")

	err := a.Sort(context.Background(), "date")
	require.Error(t, err)
	assert.Contains(t, out.String(), "Unable to sort this view")
}

func TestApp_DeleteTransaction_RetryAfterRejection(t *testing.T) {
	f, srv := newFakeServer(t)
	a, out := newTestApp(t, srv, "y\n")
	stubPasswords(t, "bad", "good")

	require.NoError(t, a.DeleteTransaction(context.Background(), "42"))

	assert.Contains(t, out.String(), "Wrong password")
	assert.Contains(t, out.String(), "Deleted")
	assert.Equal(t, []string{"/transactions/42"}, f.deletes)
	assert.Empty(t, a.inventory.Transactions())
	_, pending := a.inventory.TransactionGuard().Target()
	assert.False(t, pending)
}

func TestApp_DeleteItem_GiveUp(t *testing.T) {
	f, srv := newFakeServer(t)
	a, out := newTestApp(t, srv, "n\n")
	stubPasswords(t, "bad")

	err := a.DeleteItem(context.Background(), "5")
	var re *client.RejectedError
	require.ErrorAs(t, err, &re)

	assert.Contains(t, out.String(), "Wrong password")
	assert.Empty(t, f.deletes)
	assert.Len(t, a.inventory.Items(), 1)
	_, pending := a.inventory.ItemGuard().Target()
	assert.False(t, pending)
}

func TestApp_SellBelowPrice(t *testing.T) {
	f, srv := newFakeServer(t)
	a, out := newTestApp(t, srv, "10\n")

	err := a.Sell(context.Background(), "1")
	require.ErrorIs(t, err, models.ErrValidation)
	assert.Contains(t, out.String(), models.MsgAmountBelow)
	assert.Zero(t, f.sales)
}

func TestApp_Sell(t *testing.T) {
	f, srv := newFakeServer(t)
	a, out := newTestApp(t, srv, "60\n")

	require.NoError(t, a.Sell(context.Background(), "1"))
	assert.Contains(t, out.String(), "Pack 1 Nike, price 50.00")
	assert.Contains(t, out.String(), "Sale 43 recorded, profit 10.00")
	assert.Equal(t, 1, f.sales)
}

func TestApp_SellUnknownPack(t *testing.T) {
	_, srv := newFakeServer(t)
	a, out := newTestApp(t, srv, "60\n")

	require.ErrorIs(t, a.Sell(context.Background(), "99"), services.ErrUnknownPack)
	assert.Contains(t, out.String(), "No such pack")
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, img))
	return b.Bytes()
}

func TestApp_ImageReview(t *testing.T) {
	f, srv := newFakeServer(t)
	images, err := json.Marshal([]models.Image{
		{ID: 11, PackID: 1, Data: pngBytes(t, 128, 64)},
		{ID: 12, PackID: 1, Data: []byte("broken")},
	})
	require.NoError(t, err)
	f.packs = `[{"id":1,"brand":"Nike","price":"50","images":` + string(images) + `}]`

	a, out := newTestApp(t, srv, "")
	ctx := context.Background()

	assert.Error(t, a.DeleteImages(ctx))
	assert.Contains(t, out.String(), "Open a pack's images first")

	out.Reset()
	require.NoError(t, a.OpenImages(ctx, "1"))
	assert.Contains(t, out.String(), "[ ] 11  128x64 (thumb 64x32)")
	assert.Contains(t, out.String(), "12  (6 bytes, unreadable)")
	assert.Equal(t, "(packs images:1)", a.getStatus())

	assert.Error(t, a.SelectImage(ctx, "99"))
	require.NoError(t, a.SelectImage(ctx, "11"))
	assert.Contains(t, out.String(), "[x] 11")

	out.Reset()
	require.NoError(t, a.DeleteImages(ctx))
	assert.Contains(t, out.String(), "1 image(s) deleted")
	assert.Equal(t, []int64{11}, f.imageDeletes)
	assert.Len(t, a.review.Images(), 1)

	require.NoError(t, a.CloseImages(ctx))
	assert.Equal(t, "(packs)", a.getStatus())
}

func TestApp_AddPackValidation(t *testing.T) {
	_, srv := newFakeServer(t)
	a, out := newTestApp(t, srv, "\nsho\n12\n1\n\n")

	err := a.AddPack(context.Background())
	require.ErrorIs(t, err, models.ErrValidation)
	assert.Contains(t, out.String(), "Known categories: shoes, bags")
	assert.Contains(t, out.String(), "Did you mean: shoes")
	assert.Contains(t, out.String(), "Invalid input: Brand")
}

func TestApp_AddPackBadPrice(t *testing.T) {
	_, srv := newFakeServer(t)
	a, out := newTestApp(t, srv, "Nike\nshoes\nabc\n")

	require.ErrorIs(t, a.AddPack(context.Background()), errBadNumber)
	assert.Contains(t, out.String(), "Price must be a number")
}

func TestApp_JournalDisabled(t *testing.T) {
	_, srv := newFakeServer(t)
	a, out := newTestApp(t, srv, "")

	require.NoError(t, a.Journal(context.Background(), ""))
	assert.Contains(t, out.String(), "Journal is empty")
	assert.ErrorIs(t, a.Journal(context.Background(), "-1"), errBadNumber)
}

func TestApp_InspectSession(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "alice",
		"exp":      now.Add(48 * time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	a := newApp(&config.Config{SessionToken: tok}, nil, logging.Nop(), rdr(""), &bytes.Buffer{})
	a.inspectSession(context.Background(), now)
	assert.Equal(t, "(alice packs)", a.getStatus())

	a.setMode(context.Background(), ModeOffline)
	assert.Equal(t, "(alice packs offline)", a.getStatus())
}

type pingOnly struct {
	services.InventoryService
	calls chan struct{}
}

func (p *pingOnly) Ping(context.Context) error {
	select {
	case p.calls <- struct{}{}:
	default:
	}
	return nil
}

func TestStartOnlineStatusWatcher(t *testing.T) {
	inv := &pingOnly{calls: make(chan struct{}, 1)}
	a := newApp(&config.Config{}, inv, logging.Nop(), rdr(""), &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	select {
	case <-inv.calls:
	case <-time.After(time.Second):
		t.Fatal("watcher never pinged")
	}
	assert.Eventually(t, func() bool { return a.getMode() == ModeOnline }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestNewApp_JournalRecordsMutations(t *testing.T) {
	_, srv := newFakeServer(t)
	dir := t.TempDir()
	cfg := &config.Config{
		ServerURL:      srv.URL,
		PageSize:       10,
		RequestTimeout: time.Second,
		JournalDSN:     filepath.Join(dir, "state", "packadmin.db"),
	}
	ctx := context.Background()

	a, err := NewApp(ctx, cfg, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	require.NotNil(t, a.db)

	out := &bytes.Buffer{}
	a.out = out
	a.reader = rdr("60\n10\n")
	require.NoError(t, a.inventory.Refresh(ctx))

	require.NoError(t, a.Sell(ctx, "1"))
	require.Error(t, a.Sell(ctx, "1"))

	out.Reset()
	require.NoError(t, a.Journal(ctx, ""))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "OPERATION")
	assert.Contains(t, lines[1], "invalid")
	assert.Contains(t, lines[2], "recordSale")
	assert.Contains(t, lines[2], "ok")
}

func TestNewApp_BadServerURL(t *testing.T) {
	_, err := NewApp(context.Background(), &config.Config{ServerURL: "ftp://nowhere"}, logging.Nop())
	require.Error(t, err)
}

func TestApp_TransactionsDefaultOrderSurvivesBadDate(t *testing.T) {
	f, srv := newFakeServer(t)
	f.transactions = `[
		{"id":7,"pack_id":1,"sale_date":"Mon, 02 Jan 2024 10:00:00 GMT","amount":"60","profit":"10"},
		{"id":3,"pack_id":2,"sale_date":"2024-01-01T10:00:00Z","amount":"20","profit":"0"}
	]`
	a, out := newTestApp(t, srv, "")
	ctx := context.Background()

	require.NoError(t, a.ShowView(ctx, "transactions"))
	assert.Contains(t, out.String(), "Page 1/1 (2 records)")
	assert.Contains(t, out.String(), "sort=id ascending")
	assert.Less(t, strings.Index(out.String(), "2024-01-01"), strings.Index(out.String(), "Mon, 02 Jan"))

	out.Reset()
	require.Error(t, a.Sort(ctx, "date"))
	assert.Contains(t, out.String(), "Unable to sort this view")
}

func TestApp_SoldPackStatusShown(t *testing.T) {
	f, srv := newFakeServer(t)
	a, out := newTestApp(t, srv, "40\n")
	ctx := context.Background()

	require.NoError(t, a.Search(ctx, "Puma"))
	assert.Contains(t, out.String(), models.PackStatusSold)

	out.Reset()
	require.NoError(t, a.Sell(ctx, "3"))
	assert.Contains(t, out.String(), "already marked sold")
	assert.Equal(t, 1, f.sales)

	out.Reset()
	a.reader = bufio.NewReader(strings.NewReader("60\n"))
	require.NoError(t, a.Sell(ctx, "1"))
	assert.NotContains(t, out.String(), "already marked sold")
}
