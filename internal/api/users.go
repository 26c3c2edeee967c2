package api

import (
	"context"
	"fmt"
	"net/url"
)

// SearchUsers searches platform users by name or email
func (c *Client) SearchUsers(ctx context.Context, query string) ([]UserProfile, error) {
	path := fmt.Sprintf("/users/search?query=%s", url.QueryEscape(query))

	var users []UserProfile
	if err := c.do(ctx, "GET", path, nil, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateLocation reports the user's country to the platform
func (c *Client) UpdateLocation(ctx context.Context, country string) error {
	req := map[string]string{"country": country}
	return c.do(ctx, "POST", "/users/me/location", req, nil)
}

// RegisterPushToken registers a device push-notification token
func (c *Client) RegisterPushToken(ctx context.Context, uid, fcmToken string) error {
	req := map[string]string{
		"uid":       uid,
		"fcm_token": fcmToken,
	}
	return c.do(ctx, "POST", "/user/token", req, nil)
}
