package store

const (
	createUser = `INSERT INTO users (email, name, hashed_password, active, manager, admin, expired_password)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id, email, name, hashed_password, sign_attempts, last_sign_attempt, active, manager, admin, expired_password, created_at;`

	findUserByEmail = `SELECT id, email, name, hashed_password, sign_attempts, last_sign_attempt, active, manager, admin, expired_password, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT id, email, name, hashed_password, sign_attempts, last_sign_attempt, active, manager, admin, expired_password, created_at
    FROM users
    WHERE id = $1;`

	saveUser = `UPDATE users
    SET email = $2, name = $3, hashed_password = $4, active = $5, manager = $6, admin = $7, expired_password = $8
    WHERE id = $1
    RETURNING id, email, name, hashed_password, sign_attempts, last_sign_attempt, active, manager, admin, expired_password, created_at;`

	createDataset = `INSERT INTO datasets (name, owner_id, editable)
    VALUES ($1, $2, $3)
    RETURNING id, name, owner_id, editable, creation_date;`

	findDatasetByID = `SELECT id, name, owner_id, editable, creation_date
    FROM datasets
    WHERE id = $1;`

	saveDataset = `UPDATE datasets
    SET name = $2, owner_id = $3, editable = $4
    WHERE id = $1
    RETURNING id, name, owner_id, editable, creation_date;`

	createProtocol = `INSERT INTO protocols (name, owner_id)
    VALUES ($1, $2)
    RETURNING id, name, owner_id, creation_date;`

	findProtocolByID = `SELECT id, name, owner_id, creation_date
    FROM protocols
    WHERE id = $1;`

	saveProtocol = `UPDATE protocols
    SET name = $2, owner_id = $3
    WHERE id = $1
    RETURNING id, name, owner_id, creation_date;`

	createSample = `INSERT INTO samples (name, owner_id, protocol_id)
    VALUES ($1, $2, $3)
    RETURNING id, name, owner_id, protocol_id, creation_date;`

	findSampleByID = `SELECT id, name, owner_id, protocol_id, creation_date
    FROM samples
    WHERE id = $1;`

	saveSample = `UPDATE samples
    SET name = $2, owner_id = $3, protocol_id = $4
    WHERE id = $1
    RETURNING id, name, owner_id, protocol_id, creation_date;`
)
