package services

import (
	portsrepo "github.com/bookshare/bookshare_backend/internal/core/ports/repositories"
	portssvc "github.com/bookshare/bookshare_backend/internal/core/ports/services"
	"github.com/bookshare/bookshare_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Identity = NewIdentityService(repos.UserRepo, repos.AuthLinkRepo)
	container.Token = NewTokenService(cfg)
	container.Book = NewBookService(repos.BookRepo)
	container.Favorite = NewFavoriteService(repos.FavoriteRepo, repos.BookRepo)

	container.GoogleOAuth = NewGoogleOAuthService(cfg)
	container.FacebookOAuth = NewFacebookOAuthService(cfg)

	return container
}
