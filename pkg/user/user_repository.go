package user

import (
	"context"
	"errors"

	"recipehub/domain"
	"recipehub/entities"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetOrCreateByUsername(ctx context.Context, user *entities.User) error
		ExistsByID(ctx context.Context, id string) (bool, error)
		IsUsernameTaken(ctx context.Context, username string, excludeID string) (bool, error)
		IsEmailTaken(ctx context.Context, email string, excludeID string) (bool, error)
		UpdateUser(ctx context.Context, user *entities.User) error
		DeleteUser(ctx context.Context, id string) error
		CountRecipes(ctx context.Context, userID string) (int64, error)
		CountBookmarks(ctx context.Context, userID string) (int64, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetOrCreateByUsername loads the user with user.Username into user, creating
// it from the given fields when absent. The lookup matches on username only.
func (r *userRepository) GetOrCreateByUsername(ctx context.Context, user *entities.User) error {
	var found entities.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", user.Username).
		Attrs(*user).
		FirstOrCreate(&found).Error; err != nil {
		return err
	}
	*user = found
	return nil
}

func (r *userRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) IsUsernameTaken(ctx context.Context, username string, excludeID string) (bool, error) {
	return r.isTaken(ctx, "username", username, excludeID)
}

func (r *userRepository) IsEmailTaken(ctx context.Context, email string, excludeID string) (bool, error) {
	return r.isTaken(ctx, "email", email, excludeID)
}

func (r *userRepository) isTaken(ctx context.Context, column, value, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where(column+" = ?", value)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) CountRecipes(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *userRepository) CountBookmarks(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Bookmark{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
