package form

import (
	"fmt"

	"github.com/goliatone/go-formstate/pkg/model"
)

// scheduleValidation must be called with p.mu held.
func (p *Provider) scheduleValidation(id uint64) {
	p.validations.Schedule(id, func() {
		p.validate(id)
	})
}

// validate re-reads the record by identity and stores the outcome of its
// predicate. A record that was reset away, or whose value changed while the
// predicate ran, is left alone.
func (p *Provider) validate(id uint64) {
	p.mu.Lock()
	record, ok := p.registry.LookupID(id)
	p.mu.Unlock()
	if !ok || record.Validate == nil {
		return
	}

	valid := p.evaluate(record)

	message := ""
	if !valid {
		message = record.DefaultErrorText
	}

	p.mu.Lock()
	current, ok := p.registry.LookupID(id)
	if !ok || !current.Value.Equal(record.Value) {
		p.mu.Unlock()
		return
	}
	changed := current.Error != message
	p.registry.SetError(id, message)
	p.mu.Unlock()

	p.cfg.observer.FieldValidated(record.Key, valid)
	if changed {
		p.notify()
	}
}

func (p *Provider) evaluate(record model.FieldRecord) (valid bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("field validator panicked", "key", record.Key, "error", fmt.Sprint(r))
			valid = false
		}
	}()
	return record.Validate(record.Value)
}

// Flush runs every pending validation immediately on the calling goroutine.
// It returns the number of validations that ran.
func (p *Provider) Flush() int {
	return p.validations.FlushAll()
}

// PendingValidations returns the number of fields waiting for validation.
func (p *Provider) PendingValidations() int {
	return p.validations.Len()
}
