package api

import (
	"net/http"
	"sync"
	"testing"

	"hoststore/internal/auth"
	"hoststore/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopUp(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	member := seedTestUser(t, db, "member@example.com", domain.RoleUser, 100000)

	w := doJSON(t, r, http.MethodPost, "/api/wallet/topup", tokenFor(t, member), map[string]any{
		"amount":        50000,
		"paymentMethod": "QRIS",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 150000, body["newBalance"])

	// One ledger row carrying the post-apply snapshot
	var txs []domain.WalletTransaction
	require.NoError(t, db.Find(&txs).Error)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TxTopUp, txs[0].Type)
	assert.EqualValues(t, 50000, txs[0].Amount)
	assert.EqualValues(t, 150000, txs[0].Balance)
	assert.Equal(t, "Top up via QRIS", txs[0].Description)

	// The user row matches the snapshot
	var user domain.User
	require.NoError(t, db.First(&user, "id = ?", member.ID).Error)
	assert.EqualValues(t, 150000, user.Balance)
}

func TestTopUpInvalidAmount(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	member := seedTestUser(t, db, "member@example.com", domain.RoleUser, 100000)

	for _, amount := range []int64{0, -500} {
		w := doJSON(t, r, http.MethodPost, "/api/wallet/topup", tokenFor(t, member), map[string]any{
			"amount":        amount,
			"paymentMethod": "QRIS",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	// Neither the ledger nor the balance moved
	var txs int64
	require.NoError(t, db.Model(&domain.WalletTransaction{}).Count(&txs).Error)
	assert.Zero(t, txs)
	var user domain.User
	require.NoError(t, db.First(&user, "id = ?", member.ID).Error)
	assert.EqualValues(t, 100000, user.Balance)
}

func TestTopUpMissingMethod(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	member := seedTestUser(t, db, "member@example.com", domain.RoleUser, 0)

	w := doJSON(t, r, http.MethodPost, "/api/wallet/topup", tokenFor(t, member), map[string]any{
		"amount": 50000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTopUpConcurrentNoLostUpdates(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	member := seedTestUser(t, db, "member@example.com", domain.RoleUser, 100000)
	token := tokenFor(t, member)

	amounts := []int64{1000, 2000, 3000, 4000, 5000, 6000, 7000, 8000}
	var sum int64
	for _, a := range amounts {
		sum += a
	}

	// Fire every top-up at once; the relative increment inside the
	// transaction must absorb all of them
	var wg sync.WaitGroup
	codes := make([]int, len(amounts))
	for i, a := range amounts {
		wg.Add(1)
		go func(i int, a int64) {
			defer wg.Done()
			w := doJSON(t, r, http.MethodPost, "/api/wallet/topup", token, map[string]any{
				"amount":        a,
				"paymentMethod": "QRIS",
			})
			codes[i] = w.Code
		}(i, a)
	}
	wg.Wait()
	for _, code := range codes {
		require.Equal(t, http.StatusOK, code)
	}

	var user domain.User
	require.NoError(t, db.First(&user, "id = ?", member.ID).Error)
	assert.EqualValues(t, 100000+sum, user.Balance)

	// One ledger row per top-up
	var txs int64
	require.NoError(t, db.Model(&domain.WalletTransaction{}).Count(&txs).Error)
	assert.EqualValues(t, len(amounts), txs)
}

func TestTopUpUserRowGone(t *testing.T) {
	db := newTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// The user is deleted after authentication resolved; the handler must
	// notice the missing row instead of crediting nothing silently
	r.POST("/api/wallet/topup", func(c *gin.Context) {
		c.Set("identity", &auth.Identity{UserID: "ghost-user", Role: domain.RoleUser, IsActive: true})
	}, TopUpHandler(db, nil))

	w := doJSON(t, r, http.MethodPost, "/api/wallet/topup", "", map[string]any{
		"amount":        50000,
		"paymentMethod": "QRIS",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The rolled-back transaction left no ledger row behind
	var txs int64
	require.NoError(t, db.Model(&domain.WalletTransaction{}).Count(&txs).Error)
	assert.Zero(t, txs)
}

func TestListWalletTransactions(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	member := seedTestUser(t, db, "member@example.com", domain.RoleUser, 0)
	token := tokenFor(t, member)

	for _, a := range []int64{1000, 2000, 3000} {
		w := doJSON(t, r, http.MethodPost, "/api/wallet/topup", token, map[string]any{
			"amount":        a,
			"paymentMethod": "QRIS",
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/wallet/transactions?limit=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["transactions"].([]any), 2)
	pagination := body["pagination"].(map[string]any)
	assert.EqualValues(t, 3, pagination["total"])
	assert.EqualValues(t, 2, pagination["pages"])
}
