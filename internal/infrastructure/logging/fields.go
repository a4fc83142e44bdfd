package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/teveclub/internal/types"
)

// Session tags a browser session id
func Session(sid fmt.Stringer) zap.Field {
	return zap.Stringer("session", sid)
}

// User tags the camel owner's login name
func User(name string) zap.Field {
	return zap.String("user", name)
}

// Action tags the name of a remote action
func Action(name string) zap.Field {
	return zap.String("action", name)
}

// Result nests an action result as outcome, kind and message.
// Kind is omitted on success.
func Result(r types.ActionResult) zap.Field {
	return zap.Object("result", resultMarshaler(r))
}

type resultMarshaler types.ActionResult

func (r resultMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	res := types.ActionResult(r)
	enc.AddString("outcome", res.Outcome.String())
	if !res.OK() {
		enc.AddString("kind", res.Kind.String())
	}
	enc.AddString("message", res.Message)
	return nil
}
