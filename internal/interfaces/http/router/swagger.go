package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SwaggerPath is where the Swagger UI and doc.json are served
const SwaggerPath = "/swagger/*any"

// RegisterSwagger serves the API documentation registered by the docs
// package. The caller imports docs for its side effect.
func RegisterSwagger(engine *gin.Engine) {
	engine.GET(SwaggerPath, ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.DocExpansion("list"),
		ginSwagger.DefaultModelsExpandDepth(1),
	))
}
