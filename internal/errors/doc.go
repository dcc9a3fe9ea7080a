// Package errors provides structured errors for the dm-api project.
//
// Errors carry a Code, a user-facing message, an optional cause and metadata.
// The combat engine reports two kinds that callers are expected to branch on:
//
//   - NotFound: a combat, combatant or session id is not present
//   - FailedPrecondition: the operation is not allowed in the current state
//     (advancing a turn on a combat that is not active, starting an empty combat)
//
// Creating errors:
//
//	err := errors.NotFoundf("combatant %s not found", id)
//	err := errors.FailedPrecondition("combat is not active")
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Load(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load session")
//	}
//
// Checking:
//
//	if errors.IsNotFound(err) {
//	    // 404
//	}
//
// Handlers convert with ToGRPCError; Code.HTTPStatus gives the HTTP mapping.
package errors
