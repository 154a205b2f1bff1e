// Package models holds the TaskDesk API payloads and the session user.
package models
