// Package form implements the shared state a mounted form hands to its field
// components.
//
// A Provider owns one ordered registry of field records. Components register
// once when they mount, read their record on every render and push user input
// back through UpdateField. Updates to validated fields schedule a debounced
// check against the live record: only the newest check per field survives and
// it re-reads the value when it fires, so the error it writes always matches
// what the user typed last.
//
// Application code observes form data through HandleClick and HandleSubmit,
// which hand a Snapshot of every field value (in registration order) to a
// caller supplied function and reset the form afterwards. Callback failures
// are logged and never escape the Provider.
//
//	p := form.New(form.WithDebounceDelay(300 * time.Millisecond))
//	p.RegisterField(model.Validated{
//	    Key:              "email",
//	    Kind:             model.KindEmail,
//	    Placeholder:      "you@example.com",
//	    DefaultErrorText: "Enter a valid email",
//	    Validate:         form.Email(),
//	})
//	p.UpdateField("email", model.StringValue("ada@example.com"))
//	p.HandleSubmit(ctx, func(ctx context.Context, state form.Snapshot) error {
//	    return save(ctx, state.Values())
//	})
package form
