package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"foodgram/internal/domain/entity"
	"foodgram/internal/domain/repository"
	"foodgram/pkg/errors"
)

// In-memory repository fakes shared by the usecase tests.

type fakeUserRepo struct {
	users map[string]*entity.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	all := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type fakeSubscriptionRepo struct {
	subs map[string]*entity.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]*entity.Subscription)}
}

func subKey(authorID, followerID string) string {
	return followerID + "_" + authorID
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	sub.ID = subKey(sub.AuthorID, sub.FollowerID)
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	r.subs[sub.ID] = sub
	return nil
}

func (r *fakeSubscriptionRepo) Delete(ctx context.Context, authorID, followerID string) error {
	key := subKey(authorID, followerID)
	if _, ok := r.subs[key]; !ok {
		return errors.NotFound("Subscription", nil)
	}
	delete(r.subs, key)
	return nil
}

func (r *fakeSubscriptionRepo) Exists(ctx context.Context, authorID, followerID string) (bool, error) {
	_, ok := r.subs[subKey(authorID, followerID)]
	return ok, nil
}

func (r *fakeSubscriptionRepo) ListByFollower(ctx context.Context, followerID string, limit, offset int) ([]*entity.Subscription, int64, error) {
	var matched []*entity.Subscription
	for _, sub := range r.subs {
		if sub.FollowerID == followerID {
			matched = append(matched, sub)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

type fakeTagRepo struct {
	tags map[string]*entity.Tag
	seq  int
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: make(map[string]*entity.Tag)}
}

func (r *fakeTagRepo) Create(ctx context.Context, tag *entity.Tag) error {
	if tag.ID == "" {
		r.seq++
		tag.ID = fmt.Sprintf("tag-%d", r.seq)
	}
	r.tags[tag.ID] = tag
	return nil
}

func (r *fakeTagRepo) GetByID(ctx context.Context, id string) (*entity.Tag, error) {
	if tag, ok := r.tags[id]; ok {
		return tag, nil
	}
	return nil, errors.NotFound("Tag", nil)
}

func (r *fakeTagRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tag, error) {
	for _, tag := range r.tags {
		if tag.Slug == slug {
			return tag, nil
		}
	}
	return nil, errors.NotFound("Tag", nil)
}

func (r *fakeTagRepo) List(ctx context.Context) ([]*entity.Tag, error) {
	all := make([]*entity.Tag, 0, len(r.tags))
	for _, tag := range r.tags {
		all = append(all, tag)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

type fakeIngredientRepo struct {
	ingredients map[string]*entity.Ingredient
	seq         int
}

func newFakeIngredientRepo() *fakeIngredientRepo {
	return &fakeIngredientRepo{ingredients: make(map[string]*entity.Ingredient)}
}

func (r *fakeIngredientRepo) Create(ctx context.Context, ingredient *entity.Ingredient) error {
	if ingredient.ID == "" {
		r.seq++
		ingredient.ID = fmt.Sprintf("ingredient-%d", r.seq)
	}
	r.ingredients[ingredient.ID] = ingredient
	return nil
}

func (r *fakeIngredientRepo) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	if ingredient, ok := r.ingredients[id]; ok {
		return ingredient, nil
	}
	return nil, errors.NotFound("Ingredient", nil)
}

func (r *fakeIngredientRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Ingredient, error) {
	result := make(map[string]*entity.Ingredient)
	for _, id := range ids {
		if ingredient, ok := r.ingredients[id]; ok {
			result[id] = ingredient
		}
	}
	return result, nil
}

func (r *fakeIngredientRepo) List(ctx context.Context, namePrefix string) ([]*entity.Ingredient, error) {
	prefix := strings.ToLower(namePrefix)
	var all []*entity.Ingredient
	for _, ingredient := range r.ingredients {
		if prefix == "" || strings.HasPrefix(strings.ToLower(ingredient.Name), prefix) {
			all = append(all, ingredient)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

type fakeRecipeRepo struct {
	recipes map[string]*entity.Recipe
	seq     int
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[string]*entity.Recipe)}
}

func (r *fakeRecipeRepo) Create(ctx context.Context, recipe *entity.Recipe) error {
	r.seq++
	if recipe.ID == "" {
		recipe.ID = fmt.Sprintf("recipe-%d", r.seq)
	}
	if recipe.CreatedAt.IsZero() {
		// Monotonic timestamps so newest-first ordering is deterministic
		recipe.CreatedAt = time.Unix(int64(r.seq), 0)
	}
	recipe.UpdatedAt = recipe.CreatedAt
	r.recipes[recipe.ID] = recipe
	return nil
}

func (r *fakeRecipeRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	if recipe, ok := r.recipes[id]; ok {
		return recipe, nil
	}
	return nil, errors.NotFound("Recipe", nil)
}

func (r *fakeRecipeRepo) Update(ctx context.Context, recipe *entity.Recipe) error {
	if _, ok := r.recipes[recipe.ID]; !ok {
		return errors.NotFound("Recipe", nil)
	}
	recipe.UpdatedAt = time.Now()
	r.recipes[recipe.ID] = recipe
	return nil
}

func (r *fakeRecipeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.recipes[id]; !ok {
		return errors.NotFound("Recipe", nil)
	}
	delete(r.recipes, id)
	return nil
}

func (r *fakeRecipeRepo) List(ctx context.Context, filter repository.RecipeFilter, limit, offset int) ([]*entity.Recipe, int64, error) {
	var idSet map[string]bool
	if filter.IDs != nil {
		idSet = make(map[string]bool, len(filter.IDs))
		for _, id := range filter.IDs {
			idSet[id] = true
		}
	}

	tagSet := make(map[string]bool, len(filter.TagIDs))
	for _, id := range filter.TagIDs {
		tagSet[id] = true
	}

	var matched []*entity.Recipe
	for _, recipe := range r.recipes {
		if filter.AuthorID != "" && recipe.AuthorID != filter.AuthorID {
			continue
		}
		if idSet != nil && !idSet[recipe.ID] {
			continue
		}
		if len(tagSet) > 0 {
			found := false
			for _, tagID := range recipe.TagIDs {
				if tagSet[tagID] {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		matched = append(matched, recipe)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeRecipeRepo) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*entity.Recipe, error) {
	recipes, _, err := r.List(ctx, repository.RecipeFilter{AuthorID: authorID}, limit, 0)
	return recipes, err
}

func (r *fakeRecipeRepo) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	for _, recipe := range r.recipes {
		if recipe.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRecipeRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Recipe, error) {
	result := make(map[string]*entity.Recipe)
	for _, id := range ids {
		if recipe, ok := r.recipes[id]; ok {
			result[id] = recipe
		}
	}
	return result, nil
}

type fakeFavoriteRepo struct {
	order []string // "user|recipe", newest last
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{}
}

func markKey(userID, recipeID string) string {
	return userID + "|" + recipeID
}

func (r *fakeFavoriteRepo) Add(ctx context.Context, favorite *entity.Favorite) error {
	r.order = append(r.order, markKey(favorite.UserID, favorite.RecipeID))
	return nil
}

func (r *fakeFavoriteRepo) Remove(ctx context.Context, userID, recipeID string) error {
	key := markKey(userID, recipeID)
	for i, existing := range r.order {
		if existing == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Favorite", nil)
}

func (r *fakeFavoriteRepo) Exists(ctx context.Context, userID, recipeID string) (bool, error) {
	key := markKey(userID, recipeID)
	for _, existing := range r.order {
		if existing == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFavoriteRepo) ListRecipeIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	for i := len(r.order) - 1; i >= 0; i-- {
		parts := strings.SplitN(r.order[i], "|", 2)
		if parts[0] == userID {
			ids = append(ids, parts[1])
		}
	}
	return ids, nil
}

type fakeCartRepo struct {
	order []string
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{}
}

func (r *fakeCartRepo) Add(ctx context.Context, item *entity.CartItem) error {
	r.order = append(r.order, markKey(item.UserID, item.RecipeID))
	return nil
}

func (r *fakeCartRepo) Remove(ctx context.Context, userID, recipeID string) error {
	key := markKey(userID, recipeID)
	for i, existing := range r.order {
		if existing == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Cart item", nil)
}

func (r *fakeCartRepo) Exists(ctx context.Context, userID, recipeID string) (bool, error) {
	key := markKey(userID, recipeID)
	for _, existing := range r.order {
		if existing == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCartRepo) ListRecipeIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	for i := len(r.order) - 1; i >= 0; i-- {
		parts := strings.SplitN(r.order[i], "|", 2)
		if parts[0] == userID {
			ids = append(ids, parts[1])
		}
	}
	return ids, nil
}

type fakeShortLinkRepo struct {
	byCode   map[string]*entity.ShortLink
	byRecipe map[string]*entity.ShortLink
}

func newFakeShortLinkRepo() *fakeShortLinkRepo {
	return &fakeShortLinkRepo{
		byCode:   make(map[string]*entity.ShortLink),
		byRecipe: make(map[string]*entity.ShortLink),
	}
}

func (r *fakeShortLinkRepo) Create(ctx context.Context, link *entity.ShortLink) error {
	if _, ok := r.byRecipe[link.RecipeID]; ok {
		return errors.Conflict("Recipe already has a short link")
	}
	if _, ok := r.byCode[link.Code]; ok {
		return errors.Conflict("Short link code already exists")
	}
	r.byCode[link.Code] = link
	r.byRecipe[link.RecipeID] = link
	return nil
}

func (r *fakeShortLinkRepo) GetByCode(ctx context.Context, code string) (*entity.ShortLink, error) {
	if link, ok := r.byCode[code]; ok {
		return link, nil
	}
	return nil, errors.NotFound("Short link", nil)
}

func (r *fakeShortLinkRepo) GetByRecipeID(ctx context.Context, recipeID string) (*entity.ShortLink, error) {
	if link, ok := r.byRecipe[recipeID]; ok {
		return link, nil
	}
	return nil, errors.NotFound("Short link", nil)
}

type fakeLimiter struct {
	denied map[string]bool
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{denied: make(map[string]bool)}
}

func (l *fakeLimiter) Allow(key, action string) (bool, time.Duration) {
	if l.denied[key+":"+action] {
		return false, time.Minute
	}
	return true, 0
}

type fakeImages struct {
	uploads int
	deleted []string
}

func (f *fakeImages) UploadBase64(ctx context.Context, dataURI, folder string) (string, error) {
	if !strings.HasPrefix(dataURI, "data:image/") {
		return "", fmt.Errorf("not an image data URI")
	}
	f.uploads++
	return fmt.Sprintf("https://storage.test/%s/%d.png", folder, f.uploads), nil
}

func (f *fakeImages) Delete(ctx context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

type fakeFirebaseAuth struct {
	users     map[string]string // uid -> email
	passwords map[string]string // email -> password
	seq       int
}

func newFakeFirebaseAuth() *fakeFirebaseAuth {
	return &fakeFirebaseAuth{
		users:     make(map[string]string),
		passwords: make(map[string]string),
	}
}

func (f *fakeFirebaseAuth) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	f.seq++
	uid := fmt.Sprintf("uid-%d", f.seq)
	f.users[uid] = email
	f.passwords[email] = password
	return uid, nil
}

func (f *fakeFirebaseAuth) DeleteUser(ctx context.Context, uid string) error {
	delete(f.passwords, f.users[uid])
	delete(f.users, uid)
	return nil
}

func (f *fakeFirebaseAuth) VerifyToken(ctx context.Context, token string) (string, error) {
	uid := strings.TrimPrefix(token, "token-")
	if _, ok := f.users[uid]; !ok {
		return "", fmt.Errorf("invalid token")
	}
	return uid, nil
}

func (f *fakeFirebaseAuth) SignInWithEmailPassword(email, password string) (string, error) {
	token, _, err := f.SignInWithEmailPasswordWithRefresh(email, password)
	return token, err
}

func (f *fakeFirebaseAuth) SignInWithEmailPasswordWithRefresh(email, password string) (string, string, error) {
	if stored, ok := f.passwords[email]; !ok || stored != password {
		return "", "", fmt.Errorf("invalid credentials")
	}
	for uid, userEmail := range f.users {
		if userEmail == email {
			return "token-" + uid, "refresh-" + uid, nil
		}
	}
	return "", "", fmt.Errorf("invalid credentials")
}

func (f *fakeFirebaseAuth) RefreshIdToken(refreshToken string) (string, string, error) {
	uid := strings.TrimPrefix(refreshToken, "refresh-")
	if _, ok := f.users[uid]; !ok {
		return "", "", fmt.Errorf("invalid refresh token")
	}
	return "token-" + uid, "refresh-" + uid, nil
}

func (f *fakeFirebaseAuth) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	email, ok := f.users[uid]
	if !ok {
		return fmt.Errorf("user not found")
	}
	f.passwords[email] = newPassword
	return nil
}

func (f *fakeFirebaseAuth) TestConnection(ctx context.Context) error {
	return nil
}
