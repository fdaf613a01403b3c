// Package models defines the core domain models for Copywriter.
//
// # Models
//
//   - User: Registered account identified by a unique name
//   - Description: Generated product copy owned by exactly one User
//
// # Design Principles
//
// 1. **Plain data**: Models carry no behavior beyond construction helpers
// 2. **Avoid circular references**: Relationships use ID strings, never pointers
// 3. **Ownership is fixed**: A Description's OwnerID is set once at creation
package models
