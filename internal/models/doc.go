// Package models defines the core domain models for Chotta.
//
// # Model Overview
//
//   - Room: the bounded context; a group of participants sharing expenses.
//     Rooms have no accounts — anyone with the room URL is "in" the room.
//   - Participant: a member of a room, identified by id (names may repeat).
//   - Expense: a payment made by one participant on behalf of several,
//     carrying ExpenseShares that assign portions to the owers.
//   - Transfer: a completed direct payment between two participants.
//   - Settlement: an ephemeral suggested payment produced by the optimizer.
//     Settlements are never stored; confirming one inserts a Transfer.
//
// # Design Principles
//
//  1. Expenses and transfers are immutable historical facts once created
//     (they can be deleted, never edited in place).
//  2. Balances are always derived from scratch; nothing in this package
//     carries running totals.
//  3. Relationships use id strings, not pointers, to avoid cycles.
package models
