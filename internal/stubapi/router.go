package stubapi

import (
	"github.com/gin-gonic/gin"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// BuildRouter assembles the stub backend under /api/v1, matching the path
// space the edge rewriter forwards to.
func BuildRouter(ah *AuthHandlers, tokenSvc domain.TokenService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/otp/request", ah.RequestOTP)
	auth.POST("/otp/verify", ah.VerifyOTP)
	auth.GET("/me", RequireAuth(tokenSvc), ah.Me)

	admin := v1.Group("/admin").Use(RequireAuth(tokenSvc))
	admin.GET("/houses/list", listHouses)
	admin.GET("/players/list", listPlayers)
	admin.GET("/ledger/list", listLedger)

	return r
}

// Fixture payloads shaped like the production roster screens expect. Enough
// to drive the shell and the gateway's happy path; not a data model.

func listHouses(c *gin.Context) {
	c.JSON(200, gin.H{"data": []gin.H{
		{"id": "hse_01", "name": "Riverside Club", "location": "Pier 4", "tables": "12", "players": "86", "chips": "1,240,000", "status": "Verified"},
		{"id": "hse_02", "name": "Summit House", "location": "Hill Rd", "tables": "8", "players": "41", "chips": "310,500", "status": "Pending"},
	}})
}

func listPlayers(c *gin.Context) {
	c.JSON(200, gin.H{"data": []gin.H{
		{"id": "ply_01", "name": "R. Mehta", "phone": "9000000001", "balance": "12,500", "games": "34", "kyc": "Verified", "house": "Riverside Club"},
		{"id": "ply_02", "name": "A. Dsouza", "phone": "9000000002", "balance": "2,100", "games": "7", "kyc": "Pending", "house": "Summit House"},
	}})
}

func listLedger(c *gin.Context) {
	c.JSON(200, gin.H{"data": []gin.H{
		{"id": "txn_01", "houseName": "Riverside Club", "pid": "ply_01", "playerName": "R. Mehta", "type": "BUY_IN", "amount": "5,000", "method": "CASH"},
		{"id": "txn_02", "houseName": "Riverside Club", "pid": "ply_01", "playerName": "R. Mehta", "type": "CASH_OUT", "amount": "7,200", "method": "UPI"},
	}})
}
