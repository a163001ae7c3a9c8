/*
Package domain contains the value types shared by the tetrator service and its adapters.

It is kept free of I/O so that every front end (interactive prompt, HTTP, MCP, batch)
speaks the same vocabulary.

# Key Entities

  - Request: a (base, height) pair to evaluate.
  - Outcome: what a front end renders for one request (value, digit count, timing, error).
  - CacheEntry: the persisted form of a finished evaluation.
*/
package domain
