package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/energoledger/energoledger/internal/identity"
)

// Role groups. Every staff role can read reference data; Admin alone
// administers users, roles and permissions.
var (
	adminOnly  = []string{identity.AdminRole}
	managers   = []string{identity.AdminRole, "Manager"}
	staffRoles = []string{identity.AdminRole, "Manager", "Operator"}
)

func perm(raw string) gin.HandlerFunc {
	return RequirePermission(identity.MustParsePermission(raw))
}

// queryID parses an optional snowflake id filter; an empty value is fine,
// a malformed one aborts with 400.
func queryID(c *gin.Context, name string) (snowflake.ID, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	id, err := snowflake.ParseString(raw)
	if err != nil || id == 0 {
		AbortWithError(c, errInvalidQuery)
		return 0, false
	}
	return id, true
}

func (s *Server) registerRoutes(e *gin.Engine) {
	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", s.login)
	auth.POST("/logout", s.logout)
	auth.GET("/me", Authenticate(s.auth), s.me)

	users := api.Group("/users", Authenticate(s.auth), RequireRoles(adminOnly...))
	users.POST("", perm("create:user"), s.createUser)
	users.GET("", perm("read:user"), s.listUsers)
	users.GET("/:id", perm("read:user"), s.getUser)
	users.PUT("/:id", perm("update:user"), s.updateUser)
	users.DELETE("/:id", perm("delete:user"), s.deleteUser)

	roles := api.Group("/roles", Authenticate(s.auth), RequireRoles(adminOnly...))
	roles.POST("", perm("create:role"), s.createRole)
	roles.GET("", perm("read:role"), s.listRoles)
	roles.GET("/:id", perm("read:role"), s.getRole)
	roles.PUT("/:id", perm("update:role"), s.updateRole)
	roles.DELETE("/:id", perm("delete:role"), s.deleteRole)
	roles.PUT("/:id/permissions", perm("update:role"), s.setRolePermissions)

	permissions := api.Group("/permissions", Authenticate(s.auth), RequireRoles(adminOnly...))
	permissions.POST("", perm("create:permission"), s.createPermission)
	permissions.GET("", perm("read:permission"), s.listPermissions)
	permissions.GET("/:id", perm("read:permission"), s.getPermission)
	permissions.PUT("/:id", perm("update:permission"), s.updatePermission)
	permissions.DELETE("/:id", perm("delete:permission"), s.deletePermission)

	clients := api.Group("/clients", Authenticate(s.auth), RequireRoles(staffRoles...))
	clients.POST("", perm("create:client"), s.createClient)
	clients.GET("", perm("read:client"), s.listClients)
	clients.GET("/:id", perm("read:client"), s.getClient)
	clients.PUT("/:id", perm("update:client"), s.updateClient)
	clients.DELETE("/:id", perm("delete:client"), s.deleteClient)
	clients.PUT("/:id/subjects", perm("update:client"), s.setClientSubjects)

	subjects := api.Group("/subjects", Authenticate(s.auth), RequireRoles(staffRoles...))
	subjects.POST("", perm("create:subject"), s.createSubject)
	subjects.GET("", perm("read:subject"), s.listSubjects)
	subjects.GET("/:id", perm("read:subject"), s.getSubject)
	subjects.PUT("/:id", perm("update:subject"), s.updateSubject)
	subjects.DELETE("/:id", perm("delete:subject"), s.deleteSubject)

	properties := api.Group("/properties", Authenticate(s.auth), RequireRoles(staffRoles...))
	properties.POST("", perm("create:property"), s.createProperty)
	properties.GET("", perm("read:property"), s.listProperties)
	properties.GET("/:id", perm("read:property"), s.getProperty)
	properties.PUT("/:id", perm("update:property"), s.updateProperty)
	properties.DELETE("/:id", perm("delete:property"), s.deleteProperty)

	serviceTypes := api.Group("/service-types", Authenticate(s.auth), RequireRoles(managers...))
	serviceTypes.POST("", perm("create:service_type"), s.createServiceType)
	serviceTypes.GET("", perm("read:service_type"), s.listServiceTypes)
	serviceTypes.GET("/:id", perm("read:service_type"), s.getServiceType)
	serviceTypes.PUT("/:id", perm("update:service_type"), s.updateServiceType)
	serviceTypes.DELETE("/:id", perm("delete:service_type"), s.deleteServiceType)

	services := api.Group("/services", Authenticate(s.auth), RequireRoles(staffRoles...))
	services.POST("", perm("create:service"), s.createService)
	services.GET("", perm("read:service"), s.listServices)
	services.GET("/:id", perm("read:service"), s.getService)
	services.PUT("/:id", perm("update:service"), s.updateService)
	services.DELETE("/:id", perm("delete:service"), s.deleteService)

	works := api.Group("/works", Authenticate(s.auth), RequireRoles(staffRoles...))
	works.POST("", perm("create:work"), s.createWork)
	works.GET("", perm("read:work"), s.listWorks)
	works.GET("/:id", perm("read:work"), s.getWork)
	works.PUT("/:id", perm("update:work"), s.updateWork)
	works.DELETE("/:id", perm("delete:work"), s.deleteWork)

	payments := api.Group("/payments", Authenticate(s.auth), RequireRoles(managers...))
	payments.POST("", perm("create:payment"), s.createPayment)
	payments.GET("", perm("read:payment"), s.listPayments)
	payments.GET("/:id", perm("read:payment"), s.getPayment)
	payments.PUT("/:id", perm("update:payment"), s.updatePayment)
	payments.DELETE("/:id", perm("delete:payment"), s.deletePayment)
	payments.POST("/:id/links", perm("update:payment"), s.linkPayment)
	payments.DELETE("/:id/links", perm("update:payment"), s.unlinkPayment)
}
