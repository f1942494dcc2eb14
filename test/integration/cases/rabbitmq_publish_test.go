//go:build integration

package cases

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/application/auth"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/infrastructure/messaging/rabbitmq"
)

func Test_Register_PublishesUserRegistered(t *testing.T) {
	app := MustStartApp(t, true)

	conn, err := amqp.Dial(app.Env.RabbitURL)
	require.NoError(t, err)
	defer conn.Close()

	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	// same declaration as the publisher; redeclaring is idempotent
	require.NoError(t, ch.ExchangeDeclare(rabbitmq.DefaultExchange, "topic", true, false, false, false, nil))
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, rabbitmq.RoutingKeyUserRegistered, rabbitmq.DefaultExchange, false, nil))

	msgs, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	status, raw := app.Do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "it_event@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, status, "%s", raw)

	select {
	case m := <-msgs:
		assert.Equal(t, "application/json", m.ContentType)
		assert.Equal(t, rabbitmq.RoutingKeyUserRegistered, m.Type)

		var evt auth.UserRegisteredEvent
		require.NoError(t, json.Unmarshal(m.Body, &evt))
		assert.Equal(t, "it_event@example.com", evt.Email)
		assert.NotEmpty(t, evt.UserID)
		assert.False(t, evt.OccurredAt.IsZero())
	case <-time.After(10 * time.Second):
		t.Fatal("no user.registered message received")
	}
}
