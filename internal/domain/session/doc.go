// Package session sequences remote actions into a user session.
//
// The Orchestrator owns no site knowledge: it calls an ActionClient and
// decides what happens next from the returned results.
//
// Auto Sequence:
//  1. Login (failure aborts with a one-entry report)
//  2. Feed, Learn, Guess (failures become warnings)
//  3. Logout (always attempted, decides success vs warning)
//
// Login state is tracked from results. WithLoginGuard makes single actions
// return a NotAuthenticated failure while logged out, without any remote call.
//
// Example Usage:
//
//	orch := session.New(client, session.WithLogger(log), session.WithLoginGuard())
//	report := orch.RunAutoSequence(ctx, types.Credentials{Username: u, Password: p})
package session
