// Package remote issues the bot's actions against teveclub.hu and turns the
// site's HTML answers into typed results.
//
// Every call goes through an injected Transport (the same-origin proxy in
// production, a fake in tests). Each action has its own classifier that maps
// raw body text to a verdict by literal marker matching; the Client then maps
// transport state plus verdict to a types.ActionResult.
//
// Failure kinds:
//   - Transport: the proxy or network failed, the site never answered
//   - Domain: the site answered and said no (bad credentials, no tricks left)
//
// Feeding is the only action that loops: probe the pet page, submit the
// feeding form, stop on the satiety marker or when the form disappears,
// and never submit more than ten times per call. Iterations are paced by a
// timer, not a blocking sleep.
//
// Logout and Guess report success whenever the call completes, because the
// site prints nothing that distinguishes a failed logout or guess.
package remote
