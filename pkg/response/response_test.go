package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeShape(t *testing.T) {
	t.Run("success omits empty message", func(t *testing.T) {
		raw, err := json.Marshal(Success(map[string]string{"k": "v"}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"success","data":{"k":"v"}}`, string(raw))
	})

	t.Run("success with message", func(t *testing.T) {
		raw, err := json.Marshal(SuccessMessage("done", nil))
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"success","message":"done"}`, string(raw))
	})

	t.Run("error", func(t *testing.T) {
		raw, err := json.Marshal(Error("boom"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"error","message":"boom"}`, string(raw))
	})
}
