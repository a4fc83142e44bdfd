package remote

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/teveclub/internal/types"
)

// Feed submits the feeding form until the pet is satisfied, the form
// disappears, or the attempt cap is reached. Reaching the cap is a success.
func (c *Client) Feed(ctx context.Context) types.ActionResult {
	session := &types.FeedingSession{MaxAttempts: c.maxFeeds}
	result := c.feed(ctx, session)
	c.recorder.RecordFeedSubmissions(session.AttemptsMade)
	return c.finish("feed", result)
}

func (c *Client) feed(ctx context.Context, session *types.FeedingSession) types.ActionResult {
	for !session.Exhausted() {
		probe := c.get(ctx, pathPet)
		if !probe.TransportOK {
			return types.TransportFailure(feedFailure(probe.Message, session.AttemptsMade))
		}

		if ClassifyFeedProbe(probe.Body, c.markers) == ProbeFull {
			if session.AttemptsMade == 0 {
				return types.Succeeded("already full")
			}
			return types.Succeeded(fmt.Sprintf("fed %s and full", times(session.AttemptsMade)))
		}

		resp := c.post(ctx, pathPet, map[string]string{
			"kaja": "1",
			"pia":  "1",
			"etet": "Mehet!",
		})
		if !resp.TransportOK {
			return types.TransportFailure(feedFailure(resp.Message, session.AttemptsMade))
		}
		session.AttemptsMade++

		if ClassifyFeedSubmission(resp.Body, c.markers) == SubmissionSated {
			return types.Succeeded(fmt.Sprintf("fed %s and satisfied", times(session.AttemptsMade)))
		}

		if session.Exhausted() {
			break
		}
		if err := c.wait(ctx, c.delay); err != nil {
			c.logger.Debug("feed pause interrupted", zap.Error(err))
			return types.TransportFailure(feedFailure(err.Error(), session.AttemptsMade))
		}
	}

	return types.Succeeded(fmt.Sprintf("fed %s (attempt cap reached)", times(session.AttemptsMade)))
}

func feedFailure(reason string, fed int) string {
	if fed == 0 {
		return "feed failed: " + reason
	}
	return fmt.Sprintf("feed failed after %s: %s", times(fed), reason)
}

func times(n int) string {
	if n == 1 {
		return "1 time"
	}
	return fmt.Sprintf("%d times", n)
}
