package errors

import "fmt"

// Wrap prefixes err with msg, keeping the chain intact so sentinel
// checks with errors.Is still match the underlying cause. A nil err
// returns nil, so the call can sit directly on a return statement:
//
//	return errors.Wrap(store.Save(ctx, sess), "persist round")
//
// Prefer one wrap per layer; re-wrapping the same error on every hop
// just repeats the story.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a format string, for context that carries values:
//
//	return errors.Wrapf(err, "round %d of %d", round, total)
//
// Nil in, nil out, same as Wrap.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}
