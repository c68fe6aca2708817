package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aminekebichi/MyDay/internal/models"
	"github.com/aminekebichi/MyDay/internal/repository"
)

func newUserCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user and print its session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := createUser(cmd.Context(), a.store.Users(), name)
			if err != nil {
				return err
			}
			a.logger.WithField("user_id", user.ID).Info("user created")
			return printUser(cmd.OutOrStdout(), user)
		},
	}
	create.Flags().StringVarP(&name, "name", "n", "", "display name")
	_ = create.MarkFlagRequired("name")

	cmd.AddCommand(create)
	return cmd
}

func createUser(ctx context.Context, users repository.UserRepository, name string) (*models.User, error) {
	user := &models.User{
		ID:           uuid.New().String(),
		DisplayName:  name,
		SessionToken: uuid.New().String(),
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func printUser(w io.Writer, user *models.User) error {
	_, err := fmt.Fprintf(w, "user_id=%s\nsession_token=%s\n", user.ID, user.SessionToken)
	return err
}
