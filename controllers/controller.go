package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Akib-17/CSE471-Sheba/services"
	"github.com/Akib-17/CSE471-Sheba/utils"
)

// currentIdentity builds the caller identity the services act on from
// what AuthMiddleware stashed in the context.
func currentIdentity(c *gin.Context) services.Identity {
	return services.Identity{
		UserID: utils.CurrentUserID(c),
		Role:   utils.CurrentRole(c),
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
