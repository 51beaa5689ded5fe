package store

const (
	createUser = `INSERT INTO users (name, email, role, password_hash)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, name, email, role, password_hash, created_at, updated_at;`

	findUserByEmail = `SELECT user_id, name, email, role, password_hash, created_at, updated_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, name, email, role, password_hash, created_at, updated_at
    FROM users
    WHERE user_id = $1;`

	getAllUsers = `SELECT user_id, name, email, role, password_hash, created_at, updated_at
    FROM users
    ORDER BY user_id;`

	updateUserPassword = `UPDATE users
    SET password_hash = $1, updated_at = NOW()
    WHERE user_id = $2;`

	deleteUser = `DELETE FROM users
    WHERE user_id = $1;`
)
