/*
Package resilience provides the circuit breaker guarding calls to the
remote site.

When teveclub.hu stops answering, every bot action would otherwise wait for
its own timeout and retries. The breaker opens after a run of consecutive
failures and fails calls immediately until a cooldown passes; then a limited
number of probe calls decide whether to close it again.

# States

	Closed --[Threshold failures]-> Open --[Cooldown]-> Half-Open --[Probes ok]-> Closed
	                                  ^                     |
	                                  +------[failure]------+

# Usage

	breaker := resilience.New("teveclub.hu", resilience.Settings{
		Threshold: 5,
		Cooldown:  30 * time.Second,
		OnStateChange: func(name string, from, to resilience.State) {
			metrics.SetBreakerOpen(name, to == resilience.StateOpen)
		},
	})

	err := breaker.Do(func() error {
		_, err := client.R().Get(url)
		return err
	})
*/
package resilience
