package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/receipt-engine/internal/application/service"
	"github.com/sangkips/receipt-engine/internal/config"
	"github.com/sangkips/receipt-engine/internal/domain/entity"
	"github.com/sangkips/receipt-engine/internal/presentation/http/handler"
	"github.com/sangkips/receipt-engine/internal/presentation/http/middleware"
	"github.com/sangkips/receipt-engine/pkg/email"
	"github.com/sangkips/receipt-engine/pkg/pagination"
)

type stubProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]entity.PrintProfile
}

func (r *stubProfileRepo) GetByName(_ context.Context, name string) (*entity.PrintProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[name]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *stubProfileRepo) List(_ context.Context, _ *pagination.PaginationParams) ([]entity.PrintProfile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.PrintProfile
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProfileRepo) Create(_ context.Context, p *entity.PrintProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.Name] = *p
	return nil
}

func (r *stubProfileRepo) Update(ctx context.Context, p *entity.PrintProfile) error {
	return r.Create(ctx, p)
}

func (r *stubProfileRepo) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, name)
	return nil
}

type stubSaleRepo struct{}

func (stubSaleRepo) GetWithItems(context.Context, uuid.UUID) (*entity.Sale, error) {
	return nil, nil
}

type stubIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func (r *stubIdempotencyRepo) GetByKey(_ context.Context, key, clientID string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.keys[clientID+"|"+key]
	if !ok {
		return nil, nil
	}
	cp := *k
	return &cp, nil
}

func (r *stubIdempotencyRepo) Reserve(_ context.Context, k *entity.IdempotencyKey) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := k.ClientID + "|" + k.Key
	if _, taken := r.keys[id]; taken {
		return false, nil
	}
	cp := *k
	r.keys[id] = &cp
	return true, nil
}

func (r *stubIdempotencyRepo) Complete(_ context.Context, k *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.keys[k.ClientID+"|"+k.Key]; ok {
		stored.ResponseCode, stored.ResponseBody = k.ResponseCode, k.ResponseBody
	}
	return nil
}

func (r *stubIdempotencyRepo) Release(_ context.Context, k *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keys, k.ClientID+"|"+k.Key)
	return nil
}

func (r *stubIdempotencyRepo) DeleteExpired(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, k := range r.keys {
		if k.IsExpired() {
			delete(r.keys, id)
		}
	}
	return nil
}

type countingPrinter struct {
	mu   sync.Mutex
	jobs int
}

func (p *countingPrinter) Print(context.Context, []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs++
	return nil
}

func (p *countingPrinter) Close() error      { return nil }
func (p *countingPrinter) IsConnected() bool { return true }
func (p *countingPrinter) Type() string      { return "file" }

type disabledMailer struct{}

func (disabledMailer) Enabled() bool                        { return false }
func (disabledMailer) SendReceipt(email.ReceiptMessage) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *countingPrinter) {
	t.Helper()
	return newTestRouterWithKeys(t, map[string]*entity.IdempotencyKey{})
}

func newTestRouterWithKeys(t *testing.T, keys map[string]*entity.IdempotencyKey) (*gin.Engine, *countingPrinter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prn := &countingPrinter{}
	profiles := service.NewProfileService(&stubProfileRepo{profiles: map[string]entity.PrintProfile{}}, "default")
	receipts := service.NewReceiptService(prn, profiles, stubSaleRepo{}, disabledMailer{}, service.OutputText)

	limiter := middleware.NewClientRateLimiter(middleware.NewRateLimiterConfig(1000, 1))
	t.Cleanup(limiter.Stop)

	router := Setup(&Handlers{
		Receipt: handler.NewReceiptHandler(receipts),
		Profile: handler.NewProfileHandler(profiles),
		Printer: handler.NewPrinterHandler(receipts),
	}, &Deps{
		Cfg:             &config.Config{App: config.AppConfig{Name: "receipt-engine"}},
		IdempotencyRepo: &stubIdempotencyRepo{keys: keys},
		RateLimiter:     limiter,
	})
	return router, prn
}

const receiptBody = `{
	"transaction": {
		"kind": "sale",
		"number": "INV-2024-0001",
		"date": "2024-03-15T14:30:00Z",
		"items": [
			{"name": "Sample Product 1", "quantity": "2", "unitPrice": "125.00", "total": "250.00", "mrp": "150.00"}
		],
		"subtotal": "250.00",
		"taxAmount": "0",
		"grandTotal": "250.00",
		"amountPaid": "250.00",
		"paymentMethod": "Cash"
	}
}`

func do(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field string `json:"field"`
	} `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return env
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(router, http.MethodGet, "/api/v1/nope", "", nil)
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"success":false`) {
		t.Fatalf("unknown route: %d %s", w.Code, w.Body.String())
	}
}

func TestPreviewEndpoint(t *testing.T) {
	router, prn := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/v1/receipts/preview", receiptBody, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	env := decode(t, w)
	var data struct {
		Text string `json:"text"`
		HTML string `json:"html"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(data.Text, "GRAND TOTAL: ₹250.00") || !strings.Contains(data.HTML, "<html") {
		t.Fatalf("preview data = %+v", data)
	}
	if prn.jobs != 0 {
		t.Fatal("preview must not print")
	}
}

func TestPreviewHTMLEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(router, http.MethodPost, "/api/v1/receipts/preview/html", receiptBody, nil)
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("status = %d, content type = %s", w.Code, w.Header().Get("Content-Type"))
	}
}

func TestPreviewValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/v1/receipts/preview", `{"transaction": {"items": []}}`, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	env := decode(t, w)
	if env.Success || len(env.Errors) == 0 || env.Errors[0].Field != "number" {
		t.Fatalf("errors = %+v", env.Errors)
	}

	w = do(router, http.MethodPost, "/api/v1/receipts/preview", `{not json`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: status = %d", w.Code)
	}
}

func TestPrintEndpointIdempotent(t *testing.T) {
	router, prn := newTestRouter(t)
	headers := map[string]string{middleware.IdempotencyKeyHeader: "till-1-0001", middleware.TerminalIDHeader: "till-1"}

	first := do(router, http.MethodPost, "/api/v1/receipts/print", receiptBody, headers)
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", first.Code, first.Body.String())
	}
	second := do(router, http.MethodPost, "/api/v1/receipts/print", receiptBody, headers)
	if second.Header().Get(middleware.ReplayedHeader) != "true" {
		t.Fatal("retry should be replayed")
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Fatal("replayed body differs")
	}
	if prn.jobs != 1 {
		t.Fatalf("jobs = %d, want 1", prn.jobs)
	}

	conflict := do(router, http.MethodPost, "/api/v1/receipts/print", `{"transaction": {}}`, headers)
	if conflict.Code != http.StatusConflict {
		t.Fatalf("reused key with new body: status = %d", conflict.Code)
	}
}

func TestPrintEndpointConcurrentRetriesPrintOnce(t *testing.T) {
	router, prn := newTestRouter(t)
	headers := map[string]string{middleware.IdempotencyKeyHeader: "till-2-0001", middleware.TerminalIDHeader: "till-2"}

	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = do(router, http.MethodPost, "/api/v1/receipts/print", receiptBody, headers).Code
		}(i)
	}
	wg.Wait()

	if prn.jobs != 1 {
		t.Fatalf("jobs = %d, want 1", prn.jobs)
	}
	for _, code := range codes {
		if code != http.StatusOK && code != http.StatusConflict {
			t.Fatalf("unexpected status %d in %v", code, codes)
		}
	}
}

func TestPrintEndpointPendingKeyConflicts(t *testing.T) {
	pending := &entity.IdempotencyKey{
		Key:       "till-3-0001",
		ClientID:  "till-3",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	router, prn := newTestRouterWithKeys(t, map[string]*entity.IdempotencyKey{"till-3|till-3-0001": pending})
	headers := map[string]string{middleware.IdempotencyKeyHeader: "till-3-0001", middleware.TerminalIDHeader: "till-3"}

	w := do(router, http.MethodPost, "/api/v1/receipts/print", receiptBody, headers)
	if w.Code != http.StatusConflict || prn.jobs != 0 {
		t.Fatalf("status = %d, jobs = %d", w.Code, prn.jobs)
	}
}

func TestPrintEndpointExpiredKeyIsReused(t *testing.T) {
	expired := &entity.IdempotencyKey{
		Key:          "till-4-0001",
		ClientID:     "till-4",
		ResponseCode: http.StatusOK,
		ResponseBody: `{"success":true}`,
		ExpiresAt:    time.Now().Add(-time.Hour),
	}
	keys := map[string]*entity.IdempotencyKey{"till-4|till-4-0001": expired}
	router, prn := newTestRouterWithKeys(t, keys)
	headers := map[string]string{middleware.IdempotencyKeyHeader: "till-4-0001", middleware.TerminalIDHeader: "till-4"}

	w := do(router, http.MethodPost, "/api/v1/receipts/print", receiptBody, headers)
	if w.Code != http.StatusOK || w.Header().Get(middleware.ReplayedHeader) != "" || prn.jobs != 1 {
		t.Fatalf("status = %d, replayed = %q, jobs = %d", w.Code, w.Header().Get(middleware.ReplayedHeader), prn.jobs)
	}
}

func TestSalePrintNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/v1/sales/"+uuid.NewString()+"/print", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	w = do(router, http.MethodPost, "/api/v1/sales/not-a-uuid/print", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestEmailDisabled(t *testing.T) {
	router, _ := newTestRouter(t)
	body := strings.TrimSuffix(strings.TrimSpace(receiptBody), "}") + `, "to": "ravi@example.com"}`

	w := do(router, http.MethodPost, "/api/v1/receipts/email", body, nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
}

func TestPrinterEndpoints(t *testing.T) {
	router, prn := newTestRouter(t)

	w := do(router, http.MethodGet, "/api/v1/printer/status", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"connected":true`) {
		t.Fatalf("status: %d %s", w.Code, w.Body.String())
	}

	w = do(router, http.MethodPost, "/api/v1/printer/test", "", nil)
	if w.Code != http.StatusOK || prn.jobs != 1 {
		t.Fatalf("test print: %d jobs=%d", w.Code, prn.jobs)
	}
}

func TestProfileEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodPut, "/api/v1/print-profiles/counter", `{"paperWidth": "58mm", "businessName": "Corner Mart"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}

	w = do(router, http.MethodPut, "/api/v1/print-profiles/counter", `{"marginLeft": 20}`, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid update: %d", w.Code)
	}

	w = do(router, http.MethodGet, "/api/v1/print-profiles/counter/export", "", nil)
	env := decode(t, w)
	var doc map[string]string
	if err := json.Unmarshal(env.Data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["paperWidth"] != "58mm" || doc["businessName"] != "Corner Mart" || len(doc) != 2 {
		t.Fatalf("export = %v", doc)
	}

	w = do(router, http.MethodPost, "/api/v1/print-profiles/kiosk/import", `{"paperWidth": "112mm", "autoCut": "false"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("import: %d %s", w.Code, w.Body.String())
	}

	w = do(router, http.MethodGet, "/api/v1/print-profiles", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"pagination"`) {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}

	w = do(router, http.MethodDelete, "/api/v1/print-profiles/default", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("delete default: %d", w.Code)
	}
	w = do(router, http.MethodDelete, "/api/v1/print-profiles/kiosk", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}
	w = do(router, http.MethodGet, "/api/v1/print-profiles/kiosk", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get deleted: %d", w.Code)
	}
}
