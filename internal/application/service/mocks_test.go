package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-engine/internal/domain/entity"
	"github.com/sangkips/receipt-engine/pkg/email"
	"github.com/sangkips/receipt-engine/pkg/pagination"
	"github.com/sangkips/receipt-engine/pkg/printer"
)

type memProfileRepo struct {
	profiles map[string]*entity.PrintProfile
	err      error
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[string]*entity.PrintProfile{}}
}

func (r *memProfileRepo) GetByName(_ context.Context, name string) (*entity.PrintProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[name]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProfileRepo) List(_ context.Context, params *pagination.PaginationParams) ([]entity.PrintProfile, int64, error) {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []entity.PrintProfile
	for i, name := range names {
		if i >= params.Offset() && len(out) < params.PerPage {
			out = append(out, *r.profiles[name])
		}
	}
	return out, int64(len(names)), nil
}

func (r *memProfileRepo) Create(_ context.Context, p *entity.PrintProfile) error {
	if _, ok := r.profiles[p.Name]; ok {
		return errors.New("duplicate key")
	}
	p.ID = uuid.New()
	cp := *p
	r.profiles[p.Name] = &cp
	return nil
}

func (r *memProfileRepo) Update(_ context.Context, p *entity.PrintProfile) error {
	cp := *p
	r.profiles[p.Name] = &cp
	return nil
}

func (r *memProfileRepo) Delete(_ context.Context, name string) error {
	delete(r.profiles, name)
	return nil
}

type memSaleRepo struct {
	sales map[uuid.UUID]*entity.Sale
}

func (r *memSaleRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.sales[id], nil
}

type recordingPrinter struct {
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Print(_ context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *recordingPrinter) Close() error      { return nil }
func (p *recordingPrinter) IsConnected() bool { return p.err == nil }
func (p *recordingPrinter) Type() string      { return printer.TypeFile }

type recordingMailer struct {
	enabled bool
	sent    []email.ReceiptMessage
	err     error
}

func (m *recordingMailer) Enabled() bool { return m.enabled }

func (m *recordingMailer) SendReceipt(msg email.ReceiptMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
