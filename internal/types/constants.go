package types

const ContextUserIDKey = "user_id"
