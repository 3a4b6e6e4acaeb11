package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KESA-RIKIN/zero-hunger-platform/models"
)

func TestTaskRoutesRequireCoordinatorRole(t *testing.T) {
	r, db := setupServer(t)
	_, donorToken := createUser(t, db, "donor1", models.RoleDonor)
	_, receiverToken := createUser(t, db, "receiver1", models.RoleReceiver)

	for _, token := range []string{donorToken, receiverToken} {
		w := doJSON(t, r, http.MethodGet, "/api/tasks/available", token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/tasks/available", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetAvailableTasks(t *testing.T) {
	r, db := setupServer(t)
	_, donorToken := createUser(t, db, "donor1", models.RoleDonor)
	coordinator, coordToken := createUser(t, db, "coord1", models.RoleCoordinator)

	open := postDonation(t, r, donorToken)
	taken := postDonation(t, r, donorToken)
	_, err := lifecycleController(db).Assign(taken, coordinator.ID)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/tasks/available", coordToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseObject(t, w)
	assert.Equal(t, float64(1), resp["count"])
	tasks := resp["tasks"].([]interface{})
	require.Len(t, tasks, 1)
	assert.Equal(t, open, tasks[0].(map[string]interface{})["id"])
}

func TestAcceptTask(t *testing.T) {
	r, db := setupServer(t)
	_, donorToken := createUser(t, db, "donor1", models.RoleDonor)
	coordinator, coordToken := createUser(t, db, "coord1", models.RoleCoordinator)
	_, rivalToken := createUser(t, db, "coord2", models.RoleCoordinator)

	id := postDonation(t, r, donorToken)

	w := doJSON(t, r, http.MethodPost, "/api/tasks/"+id+"/accept", coordToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	task := parseObject(t, w)["task"].(map[string]interface{})
	assert.Equal(t, "assigned", task["status"])
	assert.Equal(t, float64(coordinator.ID), task["volunteer_id"])
	assert.Equal(t, float64(coordinator.ID), task["coordinator_id"])
	assert.NotNil(t, task["accepted_at"])

	// The second coordinator must lose and the record must keep the winner
	w = doJSON(t, r, http.MethodPost, "/api/tasks/"+id+"/accept", rivalToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var final models.Donation
	require.NoError(t, db.First(&final, "id = ?", id).Error)
	require.NotNil(t, final.VolunteerID)
	assert.Equal(t, coordinator.ID, *final.VolunteerID)

	w = doJSON(t, r, http.MethodPost, "/api/tasks/no-such-id/accept", coordToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPickupTask(t *testing.T) {
	r, db := setupServer(t)
	_, donorToken := createUser(t, db, "donor1", models.RoleDonor)
	_, coordToken := createUser(t, db, "coord1", models.RoleCoordinator)
	_, rivalToken := createUser(t, db, "coord2", models.RoleCoordinator)

	id := postDonation(t, r, donorToken)

	// Pickup straight from created: the caller is not the assigned
	// coordinator, the record stays untouched
	w := doJSON(t, r, http.MethodPost, "/api/tasks/"+id+"/pickup", coordToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	var d models.Donation
	require.NoError(t, db.First(&d, "id = ?", id).Error)
	assert.Equal(t, models.StatusCreated, d.Status)
	assert.Nil(t, d.PickupTime)

	w = doJSON(t, r, http.MethodPost, "/api/tasks/"+id+"/accept", coordToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Only the assigned coordinator may pick up
	w = doJSON(t, r, http.MethodPost, "/api/tasks/"+id+"/pickup", rivalToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/tasks/"+id+"/pickup", coordToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	task := parseObject(t, w)["task"].(map[string]interface{})
	assert.Equal(t, "picked_up", task["status"])
	assert.NotNil(t, task["pickup_time"])

	// Picking up twice conflicts
	w = doJSON(t, r, http.MethodPost, "/api/tasks/"+id+"/pickup", coordToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeliverTask(t *testing.T) {
	r, db := setupServer(t)
	_, donorToken := createUser(t, db, "donor1", models.RoleDonor)
	_, coordToken := createUser(t, db, "coord1", models.RoleCoordinator)

	id := postDonation(t, r, donorToken)

	w := doJSON(t, r, http.MethodPost, "/api/tasks/"+id+"/accept", coordToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Cannot deliver before pickup
	w = doJSON(t, r, http.MethodPost, "/api/tasks/"+id+"/deliver", coordToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/tasks/"+id+"/pickup", coordToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/tasks/"+id+"/deliver", coordToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	task := parseObject(t, w)["task"].(map[string]interface{})
	assert.Equal(t, "delivered", task["status"])
	assert.NotNil(t, task["delivered_at"])

	// Delivered is terminal: no further accept or deliver
	w = doJSON(t, r, http.MethodPost, "/api/tasks/"+id+"/deliver", coordToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/tasks/"+id+"/accept", coordToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetMyTasks(t *testing.T) {
	r, db := setupServer(t)
	_, donorToken := createUser(t, db, "donor1", models.RoleDonor)
	_, coordToken := createUser(t, db, "coord1", models.RoleCoordinator)
	rival, _ := createUser(t, db, "coord2", models.RoleCoordinator)

	mine := postDonation(t, r, donorToken)
	other := postDonation(t, r, donorToken)

	w := doJSON(t, r, http.MethodPost, "/api/tasks/"+mine+"/accept", coordToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, err := lifecycleController(db).Assign(other, rival.ID)
	require.NoError(t, err)

	w = doJSON(t, r, http.MethodGet, "/api/tasks/mine", coordToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseObject(t, w)
	assert.Equal(t, float64(1), resp["count"])
	tasks := resp["tasks"].([]interface{})
	require.Len(t, tasks, 1)
	assert.Equal(t, mine, tasks[0].(map[string]interface{})["id"])
}
