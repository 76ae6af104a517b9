package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
	"github.com/kamal-hamza/storefront-cli/internal/core/ports"
)

// UploadForm holds the per-slot selections of one breakpoint upload.
// Each instance owns its state; forms never share entries.
type UploadForm struct {
	decoder  ports.ImageDecoder
	previews ports.PreviewStore
	logger   *zap.Logger

	// staleGuard drops a resolution when a newer selection for the same
	// slot started after it
	staleGuard bool

	mu      sync.Mutex
	entries map[domain.Slot]*domain.Entry
	seq     map[domain.Slot]uint64
	status  *domain.SubmitStatus
	closed  bool
}

// FormOption configures an UploadForm
type FormOption func(*UploadForm)

// WithLogger attaches a logger
func WithLogger(logger *zap.Logger) FormOption {
	return func(f *UploadForm) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithStaleGuard enables discarding out-of-order resolutions per slot
func WithStaleGuard(enabled bool) FormOption {
	return func(f *UploadForm) {
		f.staleGuard = enabled
	}
}

// NewUploadForm creates an empty form
func NewUploadForm(decoder ports.ImageDecoder, previews ports.PreviewStore, opts ...FormOption) *UploadForm {
	f := &UploadForm{
		decoder:  decoder,
		previews: previews,
		logger:   zap.NewNop(),
		entries:  make(map[domain.Slot]*domain.Entry, len(domain.Slots())),
		seq:      make(map[domain.Slot]uint64, len(domain.Slots())),
	}
	for _, slot := range domain.Slots() {
		f.entries[slot] = nil
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SelectFile measures and validates file for slot and stores the resulting entry.
// A nil file is a cancelled selection and changes nothing. Validation failures
// are recorded on the entry; the returned error is reserved for unknown slots,
// a discarded form or a cancelled context.
func (f *UploadForm) SelectFile(ctx context.Context, slot domain.Slot, file *domain.File) (*domain.Entry, error) {
	if file == nil {
		return nil, nil
	}
	if !slot.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSlot, slot)
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, domain.ErrFormClosed
	}
	f.seq[slot]++
	mySeq := f.seq[slot]
	f.mu.Unlock()

	log := f.logger.With(zap.String("slot", string(slot)), zap.String("file", file.Name))

	token, err := f.previews.Create(ctx, slot, file)
	if err != nil {
		// The entry is still usable without a preview
		log.Warn("failed to create preview", zap.Error(err))
		token = ""
	}

	dims, err := f.measure(ctx, file)
	if err != nil && ctx.Err() != nil {
		f.revoke(token)
		return nil, fmt.Errorf("selection for %s abandoned: %w", slot, ctx.Err())
	}
	if err != nil {
		log.Debug("could not decode image", zap.Error(err))
	}

	entry := &domain.Entry{
		Slot:       slot,
		File:       file,
		Preview:    token,
		Dimensions: dims,
		Error:      ValidateImage(slot, file, dims),
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		f.revoke(token)
		return nil, domain.ErrFormClosed
	}
	if f.staleGuard && mySeq != f.seq[slot] {
		current := f.entries[slot]
		f.mu.Unlock()
		f.revoke(token)
		log.Debug("discarded stale selection", zap.Uint64("seq", mySeq))
		return current, nil
	}
	previous := f.entries[slot]
	f.entries[slot] = entry
	f.mu.Unlock()

	if previous != nil {
		f.revoke(previous.Preview)
	}

	if entry.Error != nil {
		log.Info("image rejected", zap.String("kind", string(entry.Error.Kind)))
	} else {
		log.Debug("image accepted", zap.Stringer("dimensions", *dims))
	}

	return entry, nil
}

// SelectAll selects several slots concurrently. Results are returned per slot
// once every selection has resolved.
func (f *UploadForm) SelectAll(ctx context.Context, files map[domain.Slot]*domain.File) (map[domain.Slot]*domain.Entry, error) {
	var mu sync.Mutex
	results := make(map[domain.Slot]*domain.Entry, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for slot, file := range files {
		g.Go(func() error {
			entry, err := f.SelectFile(gctx, slot, file)
			if err != nil {
				return err
			}
			mu.Lock()
			results[slot] = entry
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (f *UploadForm) measure(ctx context.Context, file *domain.File) (*domain.Dimensions, error) {
	dims, err := f.decoder.DecodeDimensions(ctx, file.Data)
	if err != nil {
		return nil, err
	}
	return &dims, nil
}

func (f *UploadForm) revoke(token domain.PreviewToken) {
	if token == "" {
		return
	}
	if err := f.previews.Revoke(token); err != nil {
		f.logger.Warn("failed to revoke preview", zap.String("token", string(token)), zap.Error(err))
	}
}

// Entry returns the current entry for slot, or nil before a file was chosen
func (f *UploadForm) Entry(slot domain.Slot) *domain.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[slot]
}

// Entries returns the current entries in slot order; unselected slots are nil
func (f *UploadForm) Entries() []*domain.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Entry, 0, len(domain.Slots()))
	for _, slot := range domain.Slots() {
		out = append(out, f.entries[slot])
	}
	return out
}

// AllSelected reports whether every slot has an entry, valid or not.
// This gates the composed preview.
func (f *UploadForm) AllSelected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allSelectedLocked()
}

func (f *UploadForm) allSelectedLocked() bool {
	for _, slot := range domain.Slots() {
		if f.entries[slot] == nil {
			return false
		}
	}
	return true
}

// CanSubmit reports whether every slot has an entry and none carries an error
func (f *UploadForm) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canSubmitLocked()
}

func (f *UploadForm) canSubmitLocked() bool {
	for _, slot := range domain.Slots() {
		if !f.entries[slot].Valid() {
			return false
		}
	}
	return true
}

// Submit records and returns the outcome of a submit attempt.
// Nothing is transferred; success only confirms validation.
func (f *UploadForm) Submit() domain.SubmitStatus {
	f.mu.Lock()
	defer f.mu.Unlock()

	status := domain.SubmitStatus{Kind: domain.StatusSuccess, Message: domain.MessageSubmitSuccess}
	if !f.canSubmitLocked() {
		status = domain.SubmitStatus{Kind: domain.StatusError, Message: domain.MessageSubmitInvalid}
	}
	f.status = &status

	f.logger.Info("form submitted", zap.String("status", string(status.Kind)))
	return status
}

// Status returns the last submit outcome, or nil if never submitted
func (f *UploadForm) Status() *domain.SubmitStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == nil {
		return nil
	}
	s := *f.status
	return &s
}

// ComposePreview builds the responsive preview once every slot has an entry.
// Entries with validation errors are included.
func (f *UploadForm) ComposePreview() (*domain.ResponsivePreview, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.allSelectedLocked() {
		return nil, false
	}

	source := func(slot domain.Slot) domain.PreviewSource {
		return domain.PreviewSource{
			Slot:             slot,
			MinViewportWidth: slot.MinViewportWidth(),
			Token:            f.entries[slot].Preview,
		}
	}

	return &domain.ResponsivePreview{
		Sources:  []domain.PreviewSource{source(domain.SlotDesktop), source(domain.SlotTablet)},
		Fallback: source(domain.SlotMobile),
	}, true
}

// Discard releases every preview handle and closes the form
func (f *UploadForm) Discard() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	var tokens []domain.PreviewToken
	for slot, entry := range f.entries {
		if entry != nil {
			tokens = append(tokens, entry.Preview)
		}
		f.entries[slot] = nil
	}
	f.mu.Unlock()

	for _, token := range tokens {
		f.revoke(token)
	}
}
